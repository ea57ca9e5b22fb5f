package userstore_test

import (
	"testing"
	"time"

	userstore "github.com/dalemusser/taskflow/internal/app/store/users"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"github.com/dalemusser/taskflow/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := models.User{
		Name:         "Ada Lovelace",
		Email:        "Ada@Example.COM",
		PasswordHash: "hash",
		Role:         models.RoleMember,
	}

	created, err := store.Create(ctx, user)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "ada@example.com" {
		t.Errorf("Email: got %q, want normalized lowercase", created.Email)
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := models.User{
		Name:  "Bad Role",
		Email: "badrole@example.com",
		Role:  "superuser",
	}

	if _, err := store.Create(ctx, user); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := models.User{Name: "User One", Email: "duplicate@example.com", Role: models.RoleMember}
	if _, err := store.Create(ctx, first); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	second := models.User{Name: "User Two", Email: "Duplicate@Example.com", Role: models.RoleMember}
	if _, err := store.Create(ctx, second); err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Name:  "Find Me",
		Email: "FindMe@Example.COM",
		Role:  models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByEmail(ctx, "findme@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %v, want %v", found.ID, created.ID)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_UpdateProfile_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Name:  "Original Name",
		Email: "original@example.com",
		Role:  models.RoleMember,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newName := "Updated Name"
	updated, err := store.UpdateProfile(ctx, created.ID, userstore.ProfileUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if updated.Name != "Updated Name" {
		t.Errorf("Name: got %q, want %q", updated.Name, "Updated Name")
	}
	if updated.Email != "original@example.com" {
		t.Errorf("Email changed unexpectedly: got %q", updated.Email)
	}
}

func TestStore_UpdateProfile_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{Name: "Taken", Email: "taken@example.com", Role: models.RoleMember}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	other, err := store.Create(ctx, models.User{Name: "Other", Email: "other@example.com", Role: models.RoleMember})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	taken := "taken@example.com"
	if _, err := store.UpdateProfile(ctx, other.ID, userstore.ProfileUpdate{Email: &taken}); err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_ConsumeResetToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Name:  "Reset Me",
		Email: "reset@example.com",
		Role:  models.RoleMember,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	expiry := time.Now().Add(time.Hour)
	if err := store.SetResetToken(ctx, created.ID, "token-abc", expiry); err != nil {
		t.Fatalf("SetResetToken failed: %v", err)
	}

	found, err := store.GetByResetToken(ctx, "token-abc")
	if err != nil {
		t.Fatalf("GetByResetToken failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %v, want %v", found.ID, created.ID)
	}

	if err := store.ConsumeResetToken(ctx, created.ID, "token-abc", "newhash"); err != nil {
		t.Fatalf("ConsumeResetToken failed: %v", err)
	}

	// Token is single-use
	if err := store.ConsumeResetToken(ctx, created.ID, "token-abc", "anotherhash"); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments on second redemption, got %v", err)
	}

	after, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if after.PasswordHash != "newhash" {
		t.Errorf("PasswordHash: got %q, want %q", after.PasswordHash, "newhash")
	}
	if after.ResetToken != "" {
		t.Error("expected reset token to be cleared")
	}
}

func TestFetcher_FetchSessionUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	fetcher := userstore.NewFetcher(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateAdmin(ctx, "Fetch Admin", "fetch@example.com")

	su, err := fetcher.FetchSessionUser(ctx, user.ID.Hex())
	if err != nil {
		t.Fatalf("FetchSessionUser failed: %v", err)
	}
	if su == nil {
		t.Fatal("expected session user, got nil")
	}
	if su.Role != "ADMIN" {
		t.Errorf("Role: got %q, want %q", su.Role, "ADMIN")
	}

	// Unknown user resolves to nil, not an error
	su, err = fetcher.FetchSessionUser(ctx, primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("FetchSessionUser failed: %v", err)
	}
	if su != nil {
		t.Errorf("expected nil for unknown user, got %+v", su)
	}

	// Malformed hex resolves to nil as well
	su, err = fetcher.FetchSessionUser(ctx, "not-a-hex-id")
	if err != nil || su != nil {
		t.Errorf("expected (nil, nil) for malformed id, got (%+v, %v)", su, err)
	}
}
