// internal/domain/models/teammember.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMember is the authoritative join between users and teams.
// Exactly one document per (user_id, team_id).
type TeamMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	TeamID    primitive.ObjectID `bson:"team_id" json:"team_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
