package client

import (
	"context"
	"time"
)

// Register creates an account and stores the returned session token on
// the client.
func (c *Client) Register(ctx context.Context, email, password, name string) (*AuthPayload, error) {
	const q = `
		mutation Register($input: RegisterInput!) {
			register(input: $input) {
				token
				user { id email name role createdAt }
			}
		}`
	input := map[string]interface{}{"email": email, "password": password, "name": name}
	var resp struct {
		Register AuthPayload `json:"register"`
	}
	err := c.do(ctx, q, map[string]interface{}{"input": input}, &resp)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Register.Token)
	return &resp.Register, nil
}

// Login authenticates and stores the returned session token on the
// client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	const q = `
		mutation Login($input: LoginInput!) {
			login(input: $input) {
				token
				user { id email name role createdAt }
			}
		}`
	input := map[string]interface{}{"email": email, "password": password}
	var resp struct {
		Login AuthPayload `json:"login"`
	}
	err := c.do(ctx, q, map[string]interface{}{"input": input}, &resp)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Login.Token)
	return &resp.Login, nil
}

// Logout clears the server-side session cookie and drops the stored
// token.
func (c *Client) Logout(ctx context.Context) error {
	const q = `mutation { logout }`
	if err := c.do(ctx, q, nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// Me returns the authenticated user, or nil when not logged in.
func (c *Client) Me(ctx context.Context) (*User, error) {
	const q = `query { me { id email name role createdAt } }`
	var resp struct {
		Me *User `json:"me"`
	}
	if err := c.do(ctx, q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Me, nil
}

// UpdateProfile changes the session user's name and/or email. Nil
// fields are left unchanged.
func (c *Client) UpdateProfile(ctx context.Context, name, email *string) (*User, error) {
	const q = `
		mutation UpdateProfile($input: UpdateProfileInput!) {
			updateProfile(input: $input) { id email name role createdAt }
		}`
	input := map[string]interface{}{}
	if name != nil {
		input["name"] = *name
	}
	if email != nil {
		input["email"] = *email
	}
	var resp struct {
		UpdateProfile User `json:"updateProfile"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}
	return &resp.UpdateProfile, nil
}

// ChangePassword rotates the session user's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*User, error) {
	const q = `
		mutation ChangePassword($input: ChangePasswordInput!) {
			changePassword(input: $input) {
				id email name role createdAt
			}
		}`
	input := map[string]interface{}{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	var resp struct {
		ChangePassword User `json:"changePassword"`
	}
	err := c.do(ctx, q, map[string]interface{}{"input": input}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.ChangePassword, nil
}

// InviteUser creates an account with the given role. Admin only.
func (c *Client) InviteUser(ctx context.Context, email, name, role string) (*User, error) {
	const q = `
		mutation InviteUser($input: InviteUserInput!) {
			inviteUser(input: $input) { id email name role createdAt }
		}`
	input := map[string]interface{}{"email": email, "name": name, "role": role}
	var resp struct {
		InviteUser User `json:"inviteUser"`
	}
	err := c.do(ctx, q, map[string]interface{}{"input": input}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.InviteUser, nil
}

// ResetPassword requests a password reset token for the given email.
// Always returns success to callers regardless of whether the account
// exists.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	const q = `
		mutation ResetPassword($email: String!) {
			resetPassword(email: $email)
		}`
	return c.do(ctx, q, map[string]interface{}{"email": email}, nil)
}

// ConfirmPasswordReset redeems a reset token for a new password.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	const q = `
		mutation ConfirmPasswordReset($token: String!, $newPassword: String!) {
			confirmPasswordReset(token: $token, newPassword: $newPassword)
		}`
	return c.do(ctx, q, map[string]interface{}{"token": token, "newPassword": newPassword}, nil)
}

const teamSelection = `
	id name description createdAt
	members { id userId teamId createdAt user { id email name role createdAt } }
	projects { id name description dueDate teamId }`

// Teams lists all teams with members and projects.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	q := `query { teams {` + teamSelection + `} }`
	var resp struct {
		Teams []Team `json:"teams"`
	}
	if err := c.do(ctx, q, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheTeams(resp.Teams)
	return resp.Teams, nil
}

// Team fetches one team by id.
func (c *Client) Team(ctx context.Context, id string) (*Team, error) {
	q := `query Team($id: String!) { team(id: $id) {` + teamSelection + `} }`
	var resp struct {
		Team Team `json:"team"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	c.cacheTeam(resp.Team)
	return &resp.Team, nil
}

// CreateTeam creates a team. Admins and leads only; leads are added as
// a member of the new team automatically.
func (c *Client) CreateTeam(ctx context.Context, name, description string) (*Team, error) {
	q := `
		mutation CreateTeam($input: CreateTeamInput!) {
			createTeam(input: $input) {` + teamSelection + `}
		}`
	input := map[string]interface{}{"name": name, "description": description}
	var resp struct {
		CreateTeam Team `json:"createTeam"`
	}
	err := c.do(ctx, q, map[string]interface{}{"input": input}, &resp)
	if err != nil {
		return nil, err
	}
	c.cacheTeam(resp.CreateTeam)
	return &resp.CreateTeam, nil
}

// AddToTeam adds a user to a team and returns the added user.
func (c *Client) AddToTeam(ctx context.Context, userID, teamID string) (*User, error) {
	const q = `
		mutation AddToTeam($userId: String!, $teamId: String!) {
			addToTeam(userId: $userId, teamId: $teamId) { id email name role createdAt }
		}`
	var resp struct {
		AddToTeam User `json:"addToTeam"`
	}
	err := c.do(ctx, q, map[string]interface{}{"userId": userID, "teamId": teamID}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.AddToTeam, nil
}

const taskSelection = `
	id title description status priority dueDate createdAt updatedAt assigneeId projectId
	assignee { id email name role createdAt }
	project { id name description dueDate teamId }`

const projectSelection = `
	id name description dueDate createdAt updatedAt teamId
	team { id name description }
	tasks {` + taskSelection + `}`

// Projects lists all projects with their tasks.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	q := `query { projects {` + projectSelection + `} }`
	var resp struct {
		Projects []Project `json:"projects"`
	}
	if err := c.do(ctx, q, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheProjects(resp.Projects)
	return resp.Projects, nil
}

// Project fetches one project by id.
func (c *Client) Project(ctx context.Context, id string) (*Project, error) {
	q := `query Project($id: String!) { project(id: $id) {` + projectSelection + `} }`
	var resp struct {
		Project Project `json:"project"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	c.cacheProject(resp.Project)
	return &resp.Project, nil
}

// CreateProjectInput carries the createProject payload. DueDate is
// optional.
type CreateProjectInput struct {
	Name        string
	Description string
	DueDate     *time.Time
	TeamID      string
}

// CreateProject creates a project in a team.
func (c *Client) CreateProject(ctx context.Context, in CreateProjectInput) (*Project, error) {
	q := `
		mutation CreateProject($input: CreateProjectInput!) {
			createProject(input: $input) {` + projectSelection + `}
		}`
	input := map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
		"teamId":      in.TeamID,
	}
	if in.DueDate != nil {
		input["dueDate"] = in.DueDate.Format(time.RFC3339)
	}
	var resp struct {
		CreateProject Project `json:"createProject"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}
	c.cacheProject(resp.CreateProject)
	return &resp.CreateProject, nil
}

// UpdateProjectInput carries the updateProject payload. Nil fields are
// left unchanged; ClearDueDate sends an explicit null to unset the due
// date.
type UpdateProjectInput struct {
	Name         *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateProject applies a partial update to a project.
func (c *Client) UpdateProject(ctx context.Context, id string, in UpdateProjectInput) (*Project, error) {
	q := `
		mutation UpdateProject($id: String!, $input: UpdateProjectInput!) {
			updateProject(id: $id, input: $input) {` + projectSelection + `}
		}`
	input := map[string]interface{}{}
	if in.Name != nil {
		input["name"] = *in.Name
	}
	if in.Description != nil {
		input["description"] = *in.Description
	}
	if in.DueDate != nil {
		input["dueDate"] = in.DueDate.Format(time.RFC3339)
	} else if in.ClearDueDate {
		input["dueDate"] = nil
	}
	var resp struct {
		UpdateProject Project `json:"updateProject"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"id": id, "input": input}, &resp); err != nil {
		return nil, err
	}
	c.cacheProject(resp.UpdateProject)
	return &resp.UpdateProject, nil
}

// DeleteProject deletes a project and everything under it, returning
// the project as it was before the cascade.
func (c *Client) DeleteProject(ctx context.Context, id string) (*Project, error) {
	q := `mutation DeleteProject($id: String!) { deleteProject(id: $id) {` + projectSelection + `} }`
	var resp struct {
		DeleteProject Project `json:"deleteProject"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	c.evictProject(id)
	return &resp.DeleteProject, nil
}

// Tasks lists a project's tasks.
func (c *Client) Tasks(ctx context.Context, projectID string) ([]Task, error) {
	q := `query Tasks($projectId: String!) { tasks(projectId: $projectId) {` + taskSelection + `} }`
	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"projectId": projectID}, &resp); err != nil {
		return nil, err
	}
	c.cacheTasks(projectID, resp.Tasks)
	return resp.Tasks, nil
}

// CreateTaskInput carries the createTask payload. Status defaults to
// TODO and Priority to MEDIUM when empty.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
	AssigneeID  string
	ProjectID   string
}

// CreateTask creates a task in a project.
func (c *Client) CreateTask(ctx context.Context, in CreateTaskInput) (*Task, error) {
	q := `
		mutation CreateTask($input: CreateTaskInput!) {
			createTask(input: $input) {` + taskSelection + `}
		}`
	input := map[string]interface{}{
		"title":       in.Title,
		"description": in.Description,
		"projectId":   in.ProjectID,
	}
	if in.Status != "" {
		input["status"] = in.Status
	}
	if in.Priority != "" {
		input["priority"] = in.Priority
	}
	if in.DueDate != nil {
		input["dueDate"] = in.DueDate.Format(time.RFC3339)
	}
	if in.AssigneeID != "" {
		input["assigneeId"] = in.AssigneeID
	}
	var resp struct {
		CreateTask Task `json:"createTask"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}
	c.cacheTask(resp.CreateTask)
	return &resp.CreateTask, nil
}

// UpdateTaskInput carries the updateTask payload. Nil fields are left
// unchanged; ClearDueDate and ClearAssignee send explicit nulls.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *string
	Priority      *string
	DueDate       *time.Time
	ClearDueDate  bool
	AssigneeID    *string
	ClearAssignee bool
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (*Task, error) {
	q := `
		mutation UpdateTask($id: String!, $input: UpdateTaskInput!) {
			updateTask(id: $id, input: $input) {` + taskSelection + `}
		}`
	input := map[string]interface{}{}
	if in.Title != nil {
		input["title"] = *in.Title
	}
	if in.Description != nil {
		input["description"] = *in.Description
	}
	if in.Status != nil {
		input["status"] = *in.Status
	}
	if in.Priority != nil {
		input["priority"] = *in.Priority
	}
	if in.DueDate != nil {
		input["dueDate"] = in.DueDate.Format(time.RFC3339)
	} else if in.ClearDueDate {
		input["dueDate"] = nil
	}
	if in.AssigneeID != nil {
		input["assigneeId"] = *in.AssigneeID
	} else if in.ClearAssignee {
		input["assigneeId"] = nil
	}
	var resp struct {
		UpdateTask Task `json:"updateTask"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"id": id, "input": input}, &resp); err != nil {
		return nil, err
	}
	c.cacheTask(resp.UpdateTask)
	return &resp.UpdateTask, nil
}

// DeleteTask deletes a task and its comments, returning the deleted
// task.
func (c *Client) DeleteTask(ctx context.Context, id string) (*Task, error) {
	q := `mutation DeleteTask($id: String!) { deleteTask(id: $id) {` + taskSelection + `} }`
	var resp struct {
		DeleteTask Task `json:"deleteTask"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	c.evictTask(id)
	return &resp.DeleteTask, nil
}

const commentSelection = `
	id content createdAt taskId authorId
	author { id email name role createdAt }`

// Comments lists a task's comments, oldest first.
func (c *Client) Comments(ctx context.Context, taskID string) ([]Comment, error) {
	q := `query Comments($taskId: String!) { comments(taskId: $taskId) {` + commentSelection + `} }`
	var resp struct {
		Comments []Comment `json:"comments"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"taskId": taskID}, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// CreateComment adds a comment to a task. The server attributes the
// comment to the session user whatever authorId says, so none is sent.
func (c *Client) CreateComment(ctx context.Context, taskID, content string) (*Comment, error) {
	q := `
		mutation CreateComment($input: CreateCommentInput!) {
			createComment(input: $input) {` + commentSelection + `}
		}`
	input := map[string]interface{}{"content": content, "taskId": taskID}
	var resp struct {
		CreateComment Comment `json:"createComment"`
	}
	err := c.do(ctx, q, map[string]interface{}{"input": input}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.CreateComment, nil
}

// Users lists all accounts.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	const q = `query { users { id email name role createdAt } }`
	var resp struct {
		Users []User `json:"users"`
	}
	if err := c.do(ctx, q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// User fetches one account by id.
func (c *Client) User(ctx context.Context, id string) (*User, error) {
	const q = `query User($id: String!) { user(id: $id) { id email name role createdAt } }`
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, q, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
