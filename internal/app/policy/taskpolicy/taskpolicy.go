// Package taskpolicy provides authorization policies for task mutation.
//
// Authorization rules:
//   - Admins can change any task
//   - Leads can change tasks in projects of teams they belong to
//   - Members may only change the status of tasks assigned to them
package taskpolicy

import (
	"context"

	"github.com/dalemusser/taskflow/internal/app/policy/teampolicy"
	"github.com/dalemusser/taskflow/internal/app/system/authz"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Decision is the outcome of a task mutation check.
type Decision struct {
	// Allowed indicates whether the user may touch the task at all.
	Allowed bool
	// StatusOnly restricts the mutation to the status field (member
	// updating their own assignment).
	StatusOnly bool
}

// CanUpdate evaluates whether the current user may update the task.
// teamID is the team owning the task's project.
func CanUpdate(ctx context.Context, db *mongo.Database, task *models.Task, teamID primitive.ObjectID) (Decision, error) {
	_, _, uid, ok := authz.UserCtx(ctx)
	if !ok {
		return Decision{}, nil
	}
	if authz.IsAdmin(ctx) {
		return Decision{Allowed: true}, nil
	}
	if authz.IsLead(ctx) {
		lead, err := teampolicy.IsLeadOfTeam(ctx, db, teamID, uid)
		if err != nil {
			return Decision{}, err
		}
		return Decision{Allowed: lead}, nil
	}
	if authz.IsMember(ctx) && task.AssigneeID != nil && *task.AssigneeID == uid {
		return Decision{Allowed: true, StatusOnly: true}, nil
	}
	return Decision{}, nil
}

// CanDelete evaluates whether the current user may delete the task.
// Members never can, even on their own assignments.
func CanDelete(ctx context.Context, db *mongo.Database, teamID primitive.ObjectID) (bool, error) {
	return teampolicy.CanManage(ctx, db, teamID)
}
