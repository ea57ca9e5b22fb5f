package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/dalemusser/taskflow/internal/app/system/auth"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing authenticated handlers.
type TestUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// AdminUser returns a TestUser with the ADMIN role.
func AdminUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  string(models.RoleAdmin),
	}
}

// LeadUser returns a TestUser with the LEAD role.
func LeadUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Lead",
		Email: "lead@test.com",
		Role:  string(models.RoleLead),
	}
}

// MemberUser returns a TestUser with the MEMBER role.
func MemberUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Member",
		Email: "member@test.com",
		Role:  string(models.RoleMember),
	}
}

// AsUser converts a fixture user into a TestUser for request injection.
func AsUser(u models.User) TestUser {
	return TestUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

// WithUser adds a user to the request context for testing authenticated
// handlers, bypassing the token middleware.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewGraphQLRequest creates a POST /graphql request carrying the given body.
func NewGraphQLRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
