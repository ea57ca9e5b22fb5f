package membershipstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/taskflow/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("team_members")}
}

// ErrDuplicateMembership is returned when the user already belongs to the team.
var ErrDuplicateMembership = errors.New("user is already a member of this team")

// Create links a user to a team. The unique (user_id, team_id) index
// makes repeat additions fail with ErrDuplicateMembership.
func (s *Store) Create(ctx context.Context, userID, teamID primitive.ObjectID) (models.TeamMember, error) {
	m := models.TeamMember{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		TeamID:    teamID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.TeamMember{}, ErrDuplicateMembership
		}
		return models.TeamMember{}, err
	}
	return m, nil
}

// ListByTeam returns the membership records for a team.
func (s *Store) ListByTeam(ctx context.Context, teamID primitive.ObjectID) ([]models.TeamMember, error) {
	cur, err := s.c.Find(ctx, bson.M{"team_id": teamID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.TeamMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// ListByUser returns the membership records for a user.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.TeamMember, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.TeamMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Exists reports whether the user belongs to the team.
func (s *Store) Exists(ctx context.Context, userID, teamID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "team_id": teamID}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}
