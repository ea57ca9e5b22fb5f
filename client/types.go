package client

import "time"

// User is a TaskFlow account as returned by the API. Password hashes
// never appear on the wire.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthPayload is the result of login and register mutations.
type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TeamInfo is the abbreviated team shape nested inside other objects.
type TeamInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectInfo is the abbreviated project shape nested inside tasks.
type ProjectInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	TeamID      string     `json:"teamId"`
}

// TeamMember links a user to a team.
type TeamMember struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TeamID    string    `json:"teamId"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Team is a full team with members and projects hydrated.
type Team struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
	Members     []TeamMember  `json:"members"`
	Projects    []ProjectInfo `json:"projects"`
}

// Task is a unit of work within a project.
type Task struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	Priority    string      `json:"priority"`
	DueDate     *time.Time  `json:"dueDate"`
	AssigneeID  *string     `json:"assigneeId"`
	ProjectID   string      `json:"projectId"`
	Assignee    *User       `json:"assignee"`
	Project     ProjectInfo `json:"project"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Project is a full project with its tasks hydrated.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	TeamID      string     `json:"teamId"`
	Team        TeamInfo   `json:"team"`
	Tasks       []Task     `json:"tasks"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Comment is a note attached to a task by its author.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	TaskID    string    `json:"taskId"`
	AuthorID  string    `json:"authorId"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Task status values.
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// Task priority values.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// User role values.
const (
	RoleAdmin  = "ADMIN"
	RoleLead   = "LEAD"
	RoleMember = "MEMBER"
)
