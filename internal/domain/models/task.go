// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task belongs to a project and is optionally assigned to a user.
type Task struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description" json:"description"`
	Status      TaskStatus          `bson:"status" json:"status"`
	Priority    Priority            `bson:"priority" json:"priority"`
	DueDate     *time.Time          `bson:"due_date,omitempty" json:"due_date,omitempty"`
	AssigneeID  *primitive.ObjectID `bson:"assignee_id,omitempty" json:"assignee_id,omitempty"`
	ProjectID   primitive.ObjectID  `bson:"project_id" json:"project_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
