package commentstore

import (
	"context"
	"time"

	"github.com/dalemusser/taskflow/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// GetByID loads a comment by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var cm models.Comment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// ListByTask returns a task's comments, oldest first.
func (s *Store) ListByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.Comment, error) {
	cur, err := s.c.Find(ctx, bson.M{"task_id": taskID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Create inserts a new comment.
func (s *Store) Create(ctx context.Context, cm models.Comment) (models.Comment, error) {
	cm.ID = primitive.NewObjectID()
	cm.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, cm); err != nil {
		return models.Comment{}, err
	}
	return cm, nil
}
