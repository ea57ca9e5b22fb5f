package taskstore

import (
	"context"
	"time"

	"github.com/dalemusser/taskflow/internal/app/system/txn"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	db       *mongo.Database
	c        *mongo.Collection
	comments *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		db:       db,
		c:        db.Collection("tasks"),
		comments: db.Collection("comments"),
	}
}

// GetByID loads a task by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByProject returns a project's tasks, oldest first.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, bson.M{"project_id": projectID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create inserts a new task. Status and priority default to TODO and
// MEDIUM when unset.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	if t.Status == "" {
		t.Status = models.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Update holds a partial task update. Nil pointers leave the field
// unchanged; the Clear flags remove the optional fields.
type Update struct {
	Title         *string
	Description   *string
	Status        *models.TaskStatus
	Priority      *models.Priority
	DueDate       *time.Time
	ClearDueDate  bool
	AssigneeID    *primitive.ObjectID
	ClearAssignee bool
}

// Update applies a partial update and returns the fresh document.
// Returns mongo.ErrNoDocuments if the task does not exist.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Task, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}
	switch {
	case upd.ClearDueDate:
		unset["due_date"] = ""
	case upd.DueDate != nil:
		set["due_date"] = upd.DueDate.UTC()
	}
	switch {
	case upd.ClearAssignee:
		unset["assignee_id"] = ""
	case upd.AssigneeID != nil:
		set["assignee_id"] = *upd.AssigneeID
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var t models.Task
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a task and its comments, in a transaction where the
// server supports one. Returns mongo.ErrNoDocuments if the task does
// not exist.
func (s *Store) Delete(ctx context.Context, logger *zap.Logger, id primitive.ObjectID) error {
	return txn.WithTransaction(ctx, s.db.Client(), logger, func(ctx context.Context) error {
		if _, err := s.comments.DeleteMany(ctx, bson.M{"task_id": id}); err != nil {
			return err
		}
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
}
