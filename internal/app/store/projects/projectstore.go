package projectstore

import (
	"context"
	"time"

	"github.com/dalemusser/taskflow/internal/app/system/normalize"
	"github.com/dalemusser/taskflow/internal/app/system/txn"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	db       *mongo.Database
	c        *mongo.Collection
	tasks    *mongo.Collection
	comments *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		db:       db,
		c:        db.Collection("projects"),
		tasks:    db.Collection("tasks"),
		comments: db.Collection("comments"),
	}
}

// GetByID loads a project by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all projects sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.Project, error) {
	return s.find(ctx, bson.M{})
}

// ListByTeam returns a team's projects sorted by folded name.
func (s *Store) ListByTeam(ctx context.Context, teamID primitive.ObjectID) ([]models.Project, error) {
	return s.find(ctx, bson.M{"team_id": teamID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Create inserts a new project after normalizing fields.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// Update holds a partial project update. Nil pointers leave the field
// unchanged; ClearDueDate removes the due date.
type Update struct {
	Name         *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
}

// Update applies a partial update and returns the fresh document.
// Returns mongo.ErrNoDocuments if the project does not exist.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Project, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	switch {
	case upd.ClearDueDate:
		unset["due_date"] = ""
	case upd.DueDate != nil:
		set["due_date"] = upd.DueDate.UTC()
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a project together with its tasks and their comments.
// The cascade runs in a transaction where the server supports one.
// Returns mongo.ErrNoDocuments if the project does not exist.
func (s *Store) Delete(ctx context.Context, logger *zap.Logger, id primitive.ObjectID) error {
	return txn.WithTransaction(ctx, s.db.Client(), logger, func(ctx context.Context) error {
		cur, err := s.tasks.Find(ctx, bson.M{"project_id": id},
			options.Find().SetProjection(bson.M{"_id": 1}))
		if err != nil {
			return err
		}
		var taskDocs []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.All(ctx, &taskDocs); err != nil {
			return err
		}

		if len(taskDocs) > 0 {
			taskIDs := make([]primitive.ObjectID, len(taskDocs))
			for i, d := range taskDocs {
				taskIDs[i] = d.ID
			}
			if _, err := s.comments.DeleteMany(ctx, bson.M{"task_id": bson.M{"$in": taskIDs}}); err != nil {
				return err
			}
			if _, err := s.tasks.DeleteMany(ctx, bson.M{"project_id": id}); err != nil {
				return err
			}
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
