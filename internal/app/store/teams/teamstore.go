package teamstore

import (
	"context"
	"time"

	"github.com/dalemusser/taskflow/internal/app/system/normalize"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

// GetByID loads a team by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var tm models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&tm); err != nil {
		return nil, err
	}
	return &tm, nil
}

// List returns all teams sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.Team, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// GetMany loads the teams for a set of IDs.
func (s *Store) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Team, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Create inserts a new team after normalizing fields.
func (s *Store) Create(ctx context.Context, tm models.Team) (models.Team, error) {
	tm.ID = primitive.NewObjectID()
	tm.Name = normalize.Name(tm.Name)
	tm.NameCI = text.Fold(tm.Name)

	now := time.Now().UTC()
	tm.CreatedAt = now
	tm.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, tm); err != nil {
		return models.Team{}, err
	}
	return tm, nil
}
