// Package teams implements team creation and membership management.
package teams

import (
	"context"

	"github.com/dalemusser/taskflow/internal/app/policy/teampolicy"
	"github.com/dalemusser/taskflow/internal/app/store/memberships"
	"github.com/dalemusser/taskflow/internal/app/store/teams"
	"github.com/dalemusser/taskflow/internal/app/store/users"
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
	db          *mongo.Database
	teams       *teamstore.Store
	memberships *membershipstore.Store
	users       *userstore.Store
	log         *zap.Logger
}

func New(db *mongo.Database, teams *teamstore.Store, memberships *membershipstore.Store, users *userstore.Store, logger *zap.Logger) *Service {
	return &Service{db: db, teams: teams, memberships: memberships, users: users, log: logger}
}

type CreateInput struct {
	Name        string `validate:"required,min=1,max=120"`
	Description string `validate:"max=2000"`
}

// Create makes a new team. Admins and leads only; the creating lead is
// added as the team's first member so they can manage it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Team, error) {
	role, _, uid, ok := authz.UserCtx(ctx)
	if !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	if role != "ADMIN" && role != "LEAD" {
		return nil, apperr.Forbidden("only admins and leads can create teams")
	}
	// Validate what will be stored, not the raw input: a whitespace-only
	// name trims to empty.
	in.Name = normalize.Name(in.Name)
	if err := inputval.Validate(in); err != nil {
		return nil, err
	}

	created, err := s.teams.Create(ctx, models.Team{
		Name:        in.Name,
		Description: htmlsanitize.Text(in.Description),
	})
	if err != nil {
		return nil, err
	}

	if role == "LEAD" {
		if _, err := s.memberships.Create(ctx, uid, created.ID); err != nil && err != membershipstore.ErrDuplicateMembership {
			return nil, err
		}
	}

	s.log.Info("team created", zap.String("team_id", created.ID.Hex()))
	return &created, nil
}

// AddToTeam links a user to a team. Admins, or leads of that team.
// Adding an existing member is a Conflict. Bad ids are NotFound before
// the policy check so a lead asking about a nonexistent team is told so.
func (s *Service) AddToTeam(ctx context.Context, userID, teamID primitive.ObjectID) (*models.TeamMember, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}

	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("team not found")
		}
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	allowed, err := teampolicy.CanManage(ctx, s.db, teamID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.Forbidden("you cannot manage this team")
	}

	m, err := s.memberships.Create(ctx, userID, teamID)
	if err != nil {
		if err == membershipstore.ErrDuplicateMembership {
			return nil, apperr.Conflict("user is already a member of this team")
		}
		return nil, err
	}
	return &m, nil
}

// List returns all teams. Requires authentication.
func (s *Service) List(ctx context.Context) ([]models.Team, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	return s.teams.List(ctx)
}

// Get returns one team by id. Requires authentication.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	tm, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("team not found")
		}
		return nil, err
	}
	return tm, nil
}

// Members returns the membership records for a team.
func (s *Service) Members(ctx context.Context, teamID primitive.ObjectID) ([]models.TeamMember, error) {
	return s.memberships.ListByTeam(ctx, teamID)
}
