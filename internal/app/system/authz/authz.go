// internal/app/system/authz/authz.go
package authz

import (
	"context"
	"strings"

	"github.com/dalemusser/taskflow/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (uppercased), name, Mongo ObjectID, and
// a found flag. If no user is present in context or the user ID is
// malformed, it returns "", "", NilObjectID, false, so callers can trust
// that ok=true means a valid, authenticated user with a valid ObjectID.
func UserCtx(ctx context.Context) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(ctx)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "", "", primitive.NilObjectID, false
	}
	return strings.ToUpper(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(ctx context.Context) bool {
	role, _, _, ok := UserCtx(ctx)
	return ok && role == "ADMIN"
}

// IsLead reports whether the current request's user is a lead.
func IsLead(ctx context.Context) bool {
	role, _, _, ok := UserCtx(ctx)
	return ok && role == "LEAD"
}

// IsMember reports whether the current request's user is a member.
func IsMember(ctx context.Context) bool {
	role, _, _, ok := UserCtx(ctx)
	return ok && role == "MEMBER"
}
