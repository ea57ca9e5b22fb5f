// Package users exposes read operations over accounts.
package users

import (
	"context"

	"github.com/dalemusser/taskflow/internal/app/store/users"
	"github.com/dalemusser/taskflow/internal/app/system/apperr"
	"github.com/dalemusser/taskflow/internal/app/system/authz"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Service struct {
	users *userstore.Store
}

func New(users *userstore.Store) *Service {
	return &Service{users: users}
}

// Me returns the authenticated user's full record.
func (s *Service) Me(ctx context.Context) (*models.User, error) {
	_, _, uid, ok := authz.UserCtx(ctx)
	if !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}

// List returns all users. Requires authentication.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	return s.users.List(ctx)
}

// Get returns one user by id. Requires authentication.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}
