// Package tasks implements task CRUD within a project.
package tasks

import (
	"context"
	"time"

	"github.com/dalemusser/taskflow/internal/app/policy/projectpolicy"
	"github.com/dalemusser/taskflow/internal/app/policy/taskpolicy"
	"github.com/dalemusser/taskflow/internal/app/store/projects"
	"github.com/dalemusser/taskflow/internal/app/store/tasks"
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
	db       *mongo.Database
	tasks    *taskstore.Store
	projects *projectstore.Store
	users    *userstore.Store
	log      *zap.Logger
}

func New(db *mongo.Database, tasks *taskstore.Store, projects *projectstore.Store, users *userstore.Store, logger *zap.Logger) *Service {
	return &Service{db: db, tasks: tasks, projects: projects, users: users, log: logger}
}

type CreateInput struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=5000"`
	Status      *models.TaskStatus
	Priority    *models.Priority
	DueDate     *time.Time
	AssigneeID  *primitive.ObjectID
	ProjectID   primitive.ObjectID
}

// Create makes a new task in a project. Admins, or leads of the owning
// team. Status defaults to TODO, priority to MEDIUM.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Task, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	// Validate what will be stored, not the raw input: a whitespace-only
	// title trims to empty.
	in.Title = normalize.Name(in.Title)
	if err := inputval.Validate(in); err != nil {
		return nil, err
	}

	p, err := s.projects.GetByID(ctx, in.ProjectID)
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
		return nil, apperr.Forbidden("you cannot manage tasks in this project")
	}

	if in.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *in.AssigneeID); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, apperr.NotFound("assignee not found")
			}
			return nil, err
		}
	}

	task := models.Task{
		Title:       in.Title,
		Description: htmlsanitize.Text(in.Description),
		DueDate:     in.DueDate,
		AssigneeID:  in.AssigneeID,
		ProjectID:   in.ProjectID,
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.log.Info("task created",
		zap.String("task_id", created.ID.Hex()),
		zap.String("project_id", in.ProjectID.Hex()))
	return &created, nil
}

type UpdateInput struct {
	Title         *string `validate:"omitempty,min=1,max=200"`
	Description   *string `validate:"omitempty,max=5000"`
	Status        *models.TaskStatus
	Priority      *models.Priority
	DueDate       *time.Time
	ClearDueDate  bool
	AssigneeID    *primitive.ObjectID
	ClearAssignee bool
}

// statusOnly reports whether the update touches nothing but status.
func (in UpdateInput) statusOnly() bool {
	return in.Title == nil && in.Description == nil && in.Priority == nil &&
		in.DueDate == nil && !in.ClearDueDate &&
		in.AssigneeID == nil && !in.ClearAssignee
}

// Update applies a partial update to a task. Admins and leads of the
// owning team can change anything; a member may only change the status
// of a task assigned to them.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (*models.Task, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	if in.Title != nil {
		// omitempty skips empty strings, so a blank title needs an
		// explicit rejection after trimming.
		trimmed := normalize.Name(*in.Title)
		if trimmed == "" {
			return nil, apperr.Invalid("title cannot be blank")
		}
		in.Title = &trimmed
	}
	if err := inputval.Validate(in); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("task not found")
		}
		return nil, err
	}
	p, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}

	decision, err := taskpolicy.CanUpdate(ctx, s.db, task, p.TeamID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, apperr.Forbidden("you cannot change this task")
	}
	if decision.StatusOnly && !in.statusOnly() {
		return nil, apperr.Forbidden("you may only change the status of your assigned task")
	}

	if in.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *in.AssigneeID); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, apperr.NotFound("assignee not found")
			}
			return nil, err
		}
	}

	upd := taskstore.Update{
		Title:         in.Title,
		Status:        in.Status,
		Priority:      in.Priority,
		DueDate:       in.DueDate,
		ClearDueDate:  in.ClearDueDate,
		AssigneeID:    in.AssigneeID,
		ClearAssignee: in.ClearAssignee,
	}
	if in.Description != nil {
		clean := htmlsanitize.Text(*in.Description)
		upd.Description = &clean
	}

	updated, err := s.tasks.Update(ctx, id, upd)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("task not found")
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a task and its comments. Admins, or leads of the
// owning team.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return apperr.Unauthorized("authentication required")
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("task not found")
		}
		return err
	}
	p, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return err
	}

	allowed, err := taskpolicy.CanDelete(ctx, s.db, p.TeamID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.Forbidden("you cannot delete this task")
	}

	if err := s.tasks.Delete(ctx, s.log, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("task not found")
		}
		return err
	}

	s.log.Info("task deleted", zap.String("task_id", id.Hex()))
	return nil
}

// Get returns one task by id. Requires authentication.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("task not found")
		}
		return nil, err
	}
	return task, nil
}

// ListByProject returns a project's tasks. Requires authentication;
// the project must exist.
func (s *Service) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("project not found")
		}
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}
