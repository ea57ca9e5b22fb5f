// Package teampolicy provides authorization policies for team management.
//
// Authorization rules:
//   - Admins can manage every team
//   - Leads can manage teams they belong to
//   - Members cannot manage teams
package teampolicy

import (
	"context"

	"github.com/dalemusser/taskflow/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsLeadOfTeam returns true if the given user belongs to the team, per
// the authoritative team_members collection. Callers have already
// checked the LEAD role.
func IsLeadOfTeam(ctx context.Context, db *mongo.Database, teamID, userID primitive.ObjectID) (bool, error) {
	n, err := db.Collection("team_members").CountDocuments(ctx, bson.M{
		"team_id": teamID,
		"user_id": userID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CanManage reports whether the current user can manage the team
// (add members, create projects, mutate the team's resources).
// Returns an error only on database failure, so callers can distinguish
// "not authorized" (false, nil) from "check failed" (false, err).
func CanManage(ctx context.Context, db *mongo.Database, teamID primitive.ObjectID) (bool, error) {
	if authz.IsAdmin(ctx) {
		return true, nil
	}
	if !authz.IsLead(ctx) {
		return false, nil
	}
	_, _, uid, ok := authz.UserCtx(ctx)
	if !ok {
		return false, nil
	}
	return IsLeadOfTeam(ctx, db, teamID, uid)
}
