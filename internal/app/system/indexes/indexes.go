// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type spec struct {
	collection string
	model      mongo.IndexModel
}

// EnsureAll creates every index the application relies on. It runs at
// startup and is idempotent; Mongo treats creating an existing index as
// a no-op.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	specs := []spec{
		{
			collection: "users",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
			},
		},
		{
			collection: "users",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "reset_token", Value: 1}},
				Options: options.Index().SetSparse(true).SetName("users_reset_token"),
			},
		},
		{
			collection: "team_members",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "team_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_tm_user_team"),
			},
		},
		{
			collection: "team_members",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "team_id", Value: 1}},
				Options: options.Index().SetName("tm_by_team"),
			},
		},
		{
			collection: "projects",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "team_id", Value: 1}},
				Options: options.Index().SetName("projects_by_team"),
			},
		},
		{
			collection: "tasks",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "project_id", Value: 1}},
				Options: options.Index().SetName("tasks_by_project"),
			},
		},
		{
			collection: "tasks",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "assignee_id", Value: 1}},
				Options: options.Index().SetSparse(true).SetName("tasks_by_assignee"),
			},
		},
		{
			collection: "comments",
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "task_id", Value: 1}, {Key: "created_at", Value: 1}},
				Options: options.Index().SetName("comments_by_task"),
			},
		},
	}

	for _, s := range specs {
		name := "<unnamed>"
		if s.model.Options != nil && s.model.Options.Name != nil {
			name = *s.model.Options.Name
		}
		if _, err := db.Collection(s.collection).Indexes().CreateOne(ctx, s.model); err != nil {
			return fmt.Errorf("create index %s on %s: %w", name, s.collection, err)
		}
		logger.Debug("ensured index", zap.String("collection", s.collection), zap.String("index", name))
	}
	return nil
}
