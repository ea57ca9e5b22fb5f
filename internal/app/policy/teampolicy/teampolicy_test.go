package teampolicy_test

import (
	"context"
	"testing"

	"github.com/dalemusser/taskflow/internal/app/policy/teampolicy"
	"github.com/dalemusser/taskflow/internal/app/system/auth"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"github.com/dalemusser/taskflow/internal/testutil"
)

func userCtx(u models.User) context.Context {
	return auth.WithUser(context.Background(), &auth.SessionUser{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	})
}

func TestCanManage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com")
	leadInside := fixtures.CreateLead(ctx, "Lead In", "leadin@example.com")
	leadOutside := fixtures.CreateLead(ctx, "Lead Out", "leadout@example.com")
	member := fixtures.CreateMember(ctx, "Member", "member@example.com")

	team := fixtures.CreateTeam(ctx, "Engineering")
	fixtures.CreateMembership(ctx, leadInside.ID, team.ID)
	fixtures.CreateMembership(ctx, member.ID, team.ID)

	tests := []struct {
		name string
		user models.User
		want bool
	}{
		{"admin always", admin, true},
		{"lead in team", leadInside, true},
		{"lead outside team", leadOutside, false},
		{"member never", member, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := teampolicy.CanManage(userCtx(tt.user), db, team.ID)
			if err != nil {
				t.Fatalf("CanManage failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("CanManage = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanManage_Unauthenticated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team := fixtures.CreateTeam(ctx, "Engineering")

	got, err := teampolicy.CanManage(context.Background(), db, team.ID)
	if err != nil {
		t.Fatalf("CanManage failed: %v", err)
	}
	if got {
		t.Error("expected false for unauthenticated context")
	}
}
