// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents admins, leads, and members.
//
// NOTE:
//   - Team membership is not embedded on User.
//     Use the team_members collection to discover a user's teams.
//   - PasswordHash is never serialized to JSON; the GraphQL layer builds
//     its own public projection of User anyway.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped
	Role         Role               `bson:"role" json:"role"`

	// Single-use password reset state. Both fields are unset outside an
	// active reset window.
	ResetToken       string     `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpiry *time.Time `bson:"reset_token_expiry,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
