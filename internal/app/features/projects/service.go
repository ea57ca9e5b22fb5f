// Package projects implements project CRUD within a team.
package projects

import (
	"context"
	"time"

	"github.com/dalemusser/taskflow/internal/app/policy/projectpolicy"
	"github.com/dalemusser/taskflow/internal/app/store/projects"
	"github.com/dalemusser/taskflow/internal/app/store/teams"
	"github.com/dalemusser/taskflow/internal/app/system/apperr"
	"github.com/dalemusser/taskflow/internal/app/system/authz"
	"github.com/dalemusser/taskflow/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskflow/internal/app/system/inputval"
	"github.com/dalemusser/taskflow/internal/app/system/normalize"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Service struct {
	db       *mongo.Database
	projects *projectstore.Store
	teams    *teamstore.Store
	log      *zap.Logger
}

func New(db *mongo.Database, projects *projectstore.Store, teams *teamstore.Store, logger *zap.Logger) *Service {
	return &Service{db: db, projects: projects, teams: teams, log: logger}
}

type CreateInput struct {
	Name        string `validate:"required,min=1,max=120"`
	Description string `validate:"max=2000"`
	DueDate     *time.Time
	TeamID      primitive.ObjectID
}

// Create makes a new project in a team. Admins, or leads of that team.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Project, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	// Validate what will be stored, not the raw input: a whitespace-only
	// name trims to empty.
	in.Name = normalize.Name(in.Name)
	if err := inputval.Validate(in); err != nil {
		return nil, err
	}

	if _, err := s.teams.GetByID(ctx, in.TeamID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("team not found")
		}
		return nil, err
	}

	allowed, err := projectpolicy.CanManage(ctx, s.db, in.TeamID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.Forbidden("you cannot manage this team's projects")
	}

	created, err := s.projects.Create(ctx, models.Project{
		Name:        in.Name,
		Description: htmlsanitize.Text(in.Description),
		DueDate:     in.DueDate,
		TeamID:      in.TeamID,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("project created",
		zap.String("project_id", created.ID.Hex()),
		zap.String("team_id", in.TeamID.Hex()))
	return &created, nil
}

type UpdateInput struct {
	Name         *string `validate:"omitempty,min=1,max=120"`
	Description  *string `validate:"omitempty,max=2000"`
	DueDate      *time.Time
	ClearDueDate bool
}

// Update applies a partial update to a project. Admins, or leads of the
// owning team.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*models.Project, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	if in.Name != nil {
		// omitempty skips empty strings, so a blank name needs an
		// explicit rejection after trimming.
		trimmed := normalize.Name(*in.Name)
		if trimmed == "" {
			return nil, apperr.Invalid("name cannot be blank")
		}
		in.Name = &trimmed
	}
	if err := inputval.Validate(in); err != nil {
		return nil, err
	}

	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("project not found")
		}
		return nil, err
	}

	allowed, err := projectpolicy.CanManage(ctx, s.db, p.TeamID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.Forbidden("you cannot manage this team's projects")
	}

	upd := projectstore.Update{
		Name:         in.Name,
		DueDate:      in.DueDate,
		ClearDueDate: in.ClearDueDate,
	}
	if in.Description != nil {
		clean := htmlsanitize.Text(*in.Description)
		upd.Description = &clean
	}

	updated, err := s.projects.Update(ctx, id, upd)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("project not found")
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a project and cascades to its tasks and their
// comments. Admins, or leads of the owning team.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return apperr.Unauthorized("authentication required")
	}

	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("project not found")
		}
		return err
	}

	allowed, err := projectpolicy.CanManage(ctx, s.db, p.TeamID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.Forbidden("you cannot manage this team's projects")
	}

	if err := s.projects.Delete(ctx, s.log, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("project not found")
		}
		return err
	}

	s.log.Info("project deleted", zap.String("project_id", id.Hex()))
	return nil
}

// List returns all projects. Requires authentication.
func (s *Service) List(ctx context.Context) ([]models.Project, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	return s.projects.List(ctx)
}

// Get returns one project by id. Requires authentication.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("project not found")
		}
		return nil, err
	}
	return p, nil
}

// ListByTeam returns a team's projects.
func (s *Service) ListByTeam(ctx context.Context, teamID primitive.ObjectID) ([]models.Project, error) {
	return s.projects.ListByTeam(ctx, teamID)
}
