package authz_test

import (
	"context"
	"testing"

	"github.com/dalemusser/taskflow/internal/app/system/auth"
	"github.com/dalemusser/taskflow/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ctxWithUser(role string) context.Context {
	return auth.WithUser(context.Background(), &auth.SessionUser{
		ID:   primitive.NewObjectID().Hex(),
		Name: "Test User",
		Role: role,
	})
}

func TestUserCtx_NoUser(t *testing.T) {
	role, name, id, ok := authz.UserCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if role != "" || name != "" || id != primitive.NilObjectID {
		t.Errorf("expected zero values, got role=%q name=%q id=%v", role, name, id)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	ctx := auth.WithUser(context.Background(), &auth.SessionUser{ID: "not-hex", Role: "ADMIN"})
	if _, _, _, ok := authz.UserCtx(ctx); ok {
		t.Fatal("expected ok=false for malformed user id")
	}
}

func TestUserCtx_NormalizesRole(t *testing.T) {
	role, _, _, ok := authz.UserCtx(ctxWithUser("admin"))
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "ADMIN" {
		t.Errorf("role: got %q, want %q", role, "ADMIN")
	}
}

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		role    string
		isAdmin bool
		isLead  bool
		isMemb  bool
	}{
		{"ADMIN", true, false, false},
		{"LEAD", false, true, false},
		{"MEMBER", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			ctx := ctxWithUser(tt.role)
			if got := authz.IsAdmin(ctx); got != tt.isAdmin {
				t.Errorf("IsAdmin = %v, want %v", got, tt.isAdmin)
			}
			if got := authz.IsLead(ctx); got != tt.isLead {
				t.Errorf("IsLead = %v, want %v", got, tt.isLead)
			}
			if got := authz.IsMember(ctx); got != tt.isMemb {
				t.Errorf("IsMember = %v, want %v", got, tt.isMemb)
			}
		})
	}
}
