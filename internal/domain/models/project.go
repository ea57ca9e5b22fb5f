// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project belongs to a team and owns tasks. Deleting a project cascades
// to its tasks (and their comments) in one transaction.
type Project struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"`
	Description string             `bson:"description" json:"description"`
	DueDate     *time.Time         `bson:"due_date,omitempty" json:"due_date,omitempty"`
	TeamID      primitive.ObjectID `bson:"team_id" json:"team_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
