package graphqlapi

import (
	"context"
	"time"

	"github.com/dalemusser/taskflow/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Views are the response shapes the schema exposes. They are fully
// hydrated before being handed to graphql-go, so every field resolves
// through the default resolver via json tags.

type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthPayloadView struct {
	Token string    `json:"token"`
	User  *UserView `json:"user"`
}

type TeamBasicView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProjectBasicView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	TeamID      string     `json:"teamId"`
}

type TaskView struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	DueDate     *time.Time        `json:"dueDate"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	AssigneeID  *string           `json:"assigneeId"`
	ProjectID   string            `json:"projectId"`
	Assignee    *UserView         `json:"assignee"`
	Project     *ProjectBasicView `json:"project"`
}

type ProjectView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	DueDate     *time.Time     `json:"dueDate"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	TeamID      string         `json:"teamId"`
	Team        *TeamBasicView `json:"team"`
	Tasks       []TaskView     `json:"tasks"`
}

type TeamMemberView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TeamID    string    `json:"teamId"`
	User      *UserView `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

type TeamView struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"createdAt"`
	Members     []TeamMemberView   `json:"members"`
	Projects    []ProjectBasicView `json:"projects"`
}

type CommentView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	TaskID    string    `json:"taskId"`
	AuthorID  string    `json:"authorId"`
	Author    *UserView `json:"author"`
	Task      *TaskView `json:"task"`
}

func userView(u *models.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:        u.ID.Hex(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func teamBasicView(tm *models.Team) *TeamBasicView {
	if tm == nil {
		return nil
	}
	return &TeamBasicView{
		ID:          tm.ID.Hex(),
		Name:        tm.Name,
		Description: tm.Description,
	}
}

func projectBasicView(p *models.Project) *ProjectBasicView {
	if p == nil {
		return nil
	}
	return &ProjectBasicView{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		DueDate:     p.DueDate,
		TeamID:      p.TeamID.Hex(),
	}
}

// taskView hydrates the assignee and owning project. A dangling
// assignee or project reference resolves to null rather than an error.
func (d *Deps) taskView(ctx context.Context, t *models.Task) (*TaskView, error) {
	if t == nil {
		return nil, nil
	}
	v := &TaskView{
		ID:          t.ID.Hex(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		ProjectID:   t.ProjectID.Hex(),
	}
	if t.AssigneeID != nil {
		hex := t.AssigneeID.Hex()
		v.AssigneeID = &hex
		u, err := d.UserStore.GetByID(ctx, *t.AssigneeID)
		if err != nil && err != mongo.ErrNoDocuments {
			return nil, err
		}
		v.Assignee = userView(u)
	}
	p, err := d.ProjectStore.GetByID(ctx, t.ProjectID)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, err
	}
	v.Project = projectBasicView(p)
	return v, nil
}

func (d *Deps) taskViews(ctx context.Context, tasks []models.Task) ([]TaskView, error) {
	views := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		v, err := d.taskView(ctx, &tasks[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// projectView hydrates the owning team and the project's tasks.
func (d *Deps) projectView(ctx context.Context, p *models.Project) (*ProjectView, error) {
	if p == nil {
		return nil, nil
	}
	v := &ProjectView{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		DueDate:     p.DueDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		TeamID:      p.TeamID.Hex(),
	}

	tm, err := d.TeamStore.GetByID(ctx, p.TeamID)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, err
	}
	v.Team = teamBasicView(tm)

	tasks, err := d.TaskStore.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	v.Tasks, err = d.taskViews(ctx, tasks)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (d *Deps) projectViews(ctx context.Context, projects []models.Project) ([]ProjectView, error) {
	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		v, err := d.projectView(ctx, &projects[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// teamView hydrates members (with their users, batched) and the team's
// projects.
func (d *Deps) teamView(ctx context.Context, tm *models.Team, members []models.TeamMember) (*TeamView, error) {
	if tm == nil {
		return nil, nil
	}
	v := &TeamView{
		ID:          tm.ID.Hex(),
		Name:        tm.Name,
		Description: tm.Description,
		CreatedAt:   tm.CreatedAt,
	}

	userIDs := make([]primitive.ObjectID, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	memberUsers, err := d.UserStore.GetMany(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.User, len(memberUsers))
	for i := range memberUsers {
		byID[memberUsers[i].ID] = &memberUsers[i]
	}

	v.Members = make([]TeamMemberView, 0, len(members))
	for _, m := range members {
		u, ok := byID[m.UserID]
		if !ok {
			// Membership pointing at a deleted user; skip it.
			continue
		}
		v.Members = append(v.Members, TeamMemberView{
			ID:        m.ID.Hex(),
			UserID:    m.UserID.Hex(),
			TeamID:    m.TeamID.Hex(),
			User:      userView(u),
			CreatedAt: m.CreatedAt,
		})
	}

	projects, err := d.ProjectStore.ListByTeam(ctx, tm.ID)
	if err != nil {
		return nil, err
	}
	v.Projects = make([]ProjectBasicView, 0, len(projects))
	for i := range projects {
		v.Projects = append(v.Projects, *projectBasicView(&projects[i]))
	}
	return v, nil
}

// commentView hydrates the author and the comment's task.
func (d *Deps) commentView(ctx context.Context, cm *models.Comment) (*CommentView, error) {
	if cm == nil {
		return nil, nil
	}
	v := &CommentView{
		ID:        cm.ID.Hex(),
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt,
		TaskID:    cm.TaskID.Hex(),
		AuthorID:  cm.AuthorID.Hex(),
	}

	u, err := d.UserStore.GetByID(ctx, cm.AuthorID)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, err
	}
	v.Author = userView(u)

	t, err := d.TaskStore.GetByID(ctx, cm.TaskID)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, err
	}
	if t != nil {
		v.Task, err = d.taskView(ctx, t)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}
