// Package projectpolicy provides authorization policies for project
// management. Projects inherit their team's management rules: whoever
// can manage the owning team can create, update, and delete its
// projects.
package projectpolicy

import (
	"context"

	"github.com/dalemusser/taskflow/internal/app/policy/teampolicy"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CanManage reports whether the current user can manage projects of the
// given team.
func CanManage(ctx context.Context, db *mongo.Database, teamID primitive.ObjectID) (bool, error) {
	return teampolicy.CanManage(ctx, db, teamID)
}
