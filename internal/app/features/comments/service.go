// Package comments implements task comments.
package comments

import (
	"context"

	"github.com/dalemusser/taskflow/internal/app/store/comments"
	"github.com/dalemusser/taskflow/internal/app/store/tasks"
	"github.com/dalemusser/taskflow/internal/app/system/apperr"
	"github.com/dalemusser/taskflow/internal/app/system/authz"
	"github.com/dalemusser/taskflow/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskflow/internal/app/system/inputval"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Service struct {
	comments *commentstore.Store
	tasks    *taskstore.Store
	log      *zap.Logger
}

func New(comments *commentstore.Store, tasks *taskstore.Store, logger *zap.Logger) *Service {
	return &Service{comments: comments, tasks: tasks, log: logger}
}

type CreateInput struct {
	Content string `validate:"required,min=1,max=5000"`
	TaskID  primitive.ObjectID
}

// Create adds a comment to a task. Any authenticated user can comment;
// the author is always the session user.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Comment, error) {
	_, _, uid, ok := authz.UserCtx(ctx)
	if !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	if err := inputval.Validate(in); err != nil {
		return nil, err
	}

	if _, err := s.tasks.GetByID(ctx, in.TaskID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("task not found")
		}
		return nil, err
	}

	created, err := s.comments.Create(ctx, models.Comment{
		Content:  htmlsanitize.Text(in.Content),
		TaskID:   in.TaskID,
		AuthorID: uid,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("comment created",
		zap.String("comment_id", created.ID.Hex()),
		zap.String("task_id", in.TaskID.Hex()))
	return &created, nil
}

// ListByTask returns a task's comments, oldest first. Requires
// authentication; the task must exist.
func (s *Service) ListByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.Comment, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("task not found")
		}
		return nil, err
	}
	return s.comments.ListByTask(ctx, taskID)
}
