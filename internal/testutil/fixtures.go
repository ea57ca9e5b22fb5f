package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/taskflow/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role. The password hash
// is a placeholder; use the auth helpers when a test needs a real one.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string, role models.Role) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: "$2a$10$test.hash.placeholder.not.a.real.credential",
		Name:         name,
		NameCI:       text.Fold(name),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAdmin)
}

// CreateLead creates a test lead user.
func (f *Fixtures) CreateLead(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleLead)
}

// CreateMember creates a test member user.
func (f *Fixtures) CreateMember(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleMember)
}

// CreateTeam creates a test team.
func (f *Fixtures) CreateTeam(ctx context.Context, name string) models.Team {
	f.t.Helper()

	now := time.Now().UTC()
	team := models.Team{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test team description",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// CreateMembership links a user to a team.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, teamID primitive.ObjectID) models.TeamMember {
	f.t.Helper()

	m := models.TeamMember{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		TeamID:    teamID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("team_members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateProject creates a test project in the given team.
func (f *Fixtures) CreateProject(ctx context.Context, name string, teamID primitive.ObjectID) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	project := models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test project description",
		TeamID:      teamID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, project); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateTask creates a test task in the given project.
func (f *Fixtures) CreateTask(ctx context.Context, title string, projectID primitive.ObjectID) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Status:    models.StatusTodo,
		Priority:  models.PriorityMedium,
		ProjectID: projectID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateAssignedTask creates a test task assigned to a user.
func (f *Fixtures) CreateAssignedTask(ctx context.Context, title string, projectID, assigneeID primitive.ObjectID) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Status:     models.StatusTodo,
		Priority:   models.PriorityMedium,
		AssigneeID: &assigneeID,
		ProjectID:  projectID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create assigned test task: %v", err)
	}
	return task
}

// CreateComment creates a test comment on the given task.
func (f *Fixtures) CreateComment(ctx context.Context, content string, taskID, authorID primitive.ObjectID) models.Comment {
	f.t.Helper()

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Content:   content,
		TaskID:    taskID,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("comments").InsertOne(ctx, comment); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}
