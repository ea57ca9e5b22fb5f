package graphqlapi

import (
	"time"

	"github.com/dalemusser/taskflow/internal/app/features/accounts"
	"github.com/dalemusser/taskflow/internal/app/features/comments"
	"github.com/dalemusser/taskflow/internal/app/features/projects"
	"github.com/dalemusser/taskflow/internal/app/features/tasks"
	"github.com/dalemusser/taskflow/internal/app/features/teams"
	"github.com/dalemusser/taskflow/internal/app/system/apperr"
	"github.com/dalemusser/taskflow/internal/app/system/normalize"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewSchema builds the executable schema. All object fields resolve
// through the default resolver against the hydrated view structs.
//
// Mutations take their payloads as named input objects (LoginInput,
// CreateTaskInput, ...) and id arguments are plain strings, matching
// the documents the original web client sends.
func NewSchema(d *Deps) (graphql.Schema, error) {
	roleEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "Role",
		Values: graphql.EnumValueConfigMap{
			"ADMIN":  &graphql.EnumValueConfig{Value: "ADMIN"},
			"LEAD":   &graphql.EnumValueConfig{Value: "LEAD"},
			"MEMBER": &graphql.EnumValueConfig{Value: "MEMBER"},
		},
	})

	statusEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "TaskStatus",
		Values: graphql.EnumValueConfigMap{
			"TODO":        &graphql.EnumValueConfig{Value: "TODO"},
			"IN_PROGRESS": &graphql.EnumValueConfig{Value: "IN_PROGRESS"},
			"DONE":        &graphql.EnumValueConfig{Value: "DONE"},
		},
	})

	priorityEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "Priority",
		Values: graphql.EnumValueConfigMap{
			"LOW":    &graphql.EnumValueConfig{Value: "LOW"},
			"MEDIUM": &graphql.EnumValueConfig{Value: "MEDIUM"},
			"HIGH":   &graphql.EnumValueConfig{Value: "HIGH"},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role":      &graphql.Field{Type: graphql.NewNonNull(roleEnum)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: graphql.NewNonNull(userType)},
		},
	})

	teamBasicType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TeamInfo",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
		},
	})

	projectBasicType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProjectInfo",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"dueDate":     &graphql.Field{Type: graphql.DateTime},
			"teamId":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	taskType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"status":      &graphql.Field{Type: graphql.NewNonNull(statusEnum)},
			"priority":    &graphql.Field{Type: graphql.NewNonNull(priorityEnum)},
			"dueDate":     &graphql.Field{Type: graphql.DateTime},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"assigneeId":  &graphql.Field{Type: graphql.ID},
			"projectId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"assignee":    &graphql.Field{Type: userType},
			"project":     &graphql.Field{Type: projectBasicType},
		},
	})

	projectType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"dueDate":     &graphql.Field{Type: graphql.DateTime},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"teamId":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"team":        &graphql.Field{Type: teamBasicType},
			"tasks":       &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(taskType))},
		},
	})

	teamMemberType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TeamMember",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"userId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"teamId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"user":      &graphql.Field{Type: userType},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	teamType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Team",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"members":     &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(teamMemberType))},
			"projects":    &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(projectBasicType))},
		},
	})

	commentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"content":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"taskId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"authorId":  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"author":    &graphql.Field{Type: userType},
			"task":      &graphql.Field{Type: taskType},
		},
	})

	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	registerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RegisterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	updateProfileInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateProfileInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	changePasswordInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ChangePasswordInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"currentPassword": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"newPassword":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	inviteUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "InviteUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"role":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(roleEnum)},
		},
	})

	createTeamInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTeamInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	createProjectInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateProjectInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"dueDate":     &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"teamId":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	updateProjectInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateProjectInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"dueDate":     &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		},
	})

	createTaskInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"status":      &graphql.InputObjectFieldConfig{Type: statusEnum},
			"priority":    &graphql.InputObjectFieldConfig{Type: priorityEnum},
			"dueDate":     &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"assigneeId":  &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"projectId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	updateTaskInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateTaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"status":      &graphql.InputObjectFieldConfig{Type: statusEnum},
			"priority":    &graphql.InputObjectFieldConfig{Type: priorityEnum},
			"dueDate":     &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"assigneeId":  &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	createCommentInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateCommentInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"content": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"taskId":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			// Accepted for wire compatibility; the author is always the
			// session user.
			"authorId": &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					u, err := d.Users.Me(p.Context)
					if err != nil {
						if apperr.Is(err, apperr.CodeUnauthorized) {
							// Unauthenticated me resolves to null so the
							// client can check session state quietly.
							return nil, nil
						}
						return nil, err
					}
					return userView(u), nil
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(userType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := d.Users.List(p.Context)
					if err != nil {
						return nil, err
					}
					views := make([]*UserView, 0, len(list))
					for i := range list {
						views = append(views, userView(&list[i]))
					}
					return views, nil
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					u, err := d.Users.Get(p.Context, id)
					if err != nil {
						return nil, err
					}
					return userView(u), nil
				},
			},
			"teams": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(teamType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := d.Teams.List(p.Context)
					if err != nil {
						return nil, err
					}
					views := make([]*TeamView, 0, len(list))
					for i := range list {
						members, err := d.Teams.Members(p.Context, list[i].ID)
						if err != nil {
							return nil, err
						}
						v, err := d.teamView(p.Context, &list[i], members)
						if err != nil {
							return nil, err
						}
						views = append(views, v)
					}
					return views, nil
				},
			},
			"team": &graphql.Field{
				Type: teamType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					tm, err := d.Teams.Get(p.Context, id)
					if err != nil {
						return nil, err
					}
					members, err := d.Teams.Members(p.Context, tm.ID)
					if err != nil {
						return nil, err
					}
					return d.teamView(p.Context, tm, members)
				},
			},
			"projects": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(projectType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := d.Projects.List(p.Context)
					if err != nil {
						return nil, err
					}
					return d.projectViews(p.Context, list)
				},
			},
			"project": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					proj, err := d.Projects.Get(p.Context, id)
					if err != nil {
						return nil, err
					}
					return d.projectView(p.Context, proj)
				},
			},
			"tasks": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(taskType)),
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					projectID, err := idArg(p, "projectId")
					if err != nil {
						return nil, err
					}
					list, err := d.Tasks.ListByProject(p.Context, projectID)
					if err != nil {
						return nil, err
					}
					return d.taskViews(p.Context, list)
				},
			},
			"comments": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(commentType)),
				Args: graphql.FieldConfigArgument{
					"taskId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					taskID, err := idArg(p, "taskId")
					if err != nil {
						return nil, err
					}
					list, err := d.Comments.ListByTask(p.Context, taskID)
					if err != nil {
						return nil, err
					}
					views := make([]*CommentView, 0, len(list))
					for i := range list {
						v, err := d.commentView(p.Context, &list[i])
						if err != nil {
							return nil, err
						}
						views = append(views, v)
					}
					return views, nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(registerInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					u, token, err := d.Accounts.Register(p.Context, accounts.RegisterInput{
						Email:    strField(in, "email"),
						Password: strField(in, "password"),
						Name:     strField(in, "name"),
					})
					if err != nil {
						return nil, err
					}
					d.setSessionCookie(p.Context, token)
					return &AuthPayloadView{Token: token, User: userView(u)}, nil
				},
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					u, token, err := d.Accounts.Login(p.Context, strField(in, "email"), strField(in, "password"))
					if err != nil {
						return nil, err
					}
					d.setSessionCookie(p.Context, token)
					return &AuthPayloadView{Token: token, User: userView(u)}, nil
				},
			},
			"logout": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d.clearSessionCookie(p.Context)
					return "logged out", nil
				},
			},
			"updateProfile": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateProfileInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					u, err := d.Accounts.UpdateProfile(p.Context, accounts.UpdateProfileInput{
						Name:  optStrField(in, "name"),
						Email: optStrField(in, "email"),
					})
					if err != nil {
						return nil, err
					}
					return userView(u), nil
				},
			},
			"changePassword": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(changePasswordInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					err := d.Accounts.ChangePassword(p.Context, accounts.ChangePasswordInput{
						CurrentPassword: strField(in, "currentPassword"),
						NewPassword:     strField(in, "newPassword"),
					})
					if err != nil {
						return nil, err
					}
					u, err := d.Users.Me(p.Context)
					if err != nil {
						return nil, err
					}
					return userView(u), nil
				},
			},
			"inviteUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(inviteUserInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					u, err := d.Accounts.InviteUser(p.Context, accounts.InviteUserInput{
						Email: strField(in, "email"),
						Name:  strField(in, "name"),
						Role:  strField(in, "role"),
					})
					if err != nil {
						return nil, err
					}
					return userView(u), nil
				},
			},
			"resetPassword": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := d.Accounts.ResetPassword(p.Context, strArg(p, "email")); err != nil {
						return nil, err
					}
					// Same answer whether or not the account exists.
					return "if the account exists, a reset token has been issued", nil
				},
			},
			"confirmPasswordReset": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"token":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"newPassword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					err := d.Accounts.ConfirmPasswordReset(p.Context, accounts.ConfirmPasswordResetInput{
						Token:       strArg(p, "token"),
						NewPassword: strArg(p, "newPassword"),
					})
					if err != nil {
						return nil, err
					}
					return "password updated", nil
				},
			},
			"createTeam": &graphql.Field{
				Type: graphql.NewNonNull(teamType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createTeamInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					tm, err := d.Teams.Create(p.Context, teams.CreateInput{
						Name:        strField(in, "name"),
						Description: strField(in, "description"),
					})
					if err != nil {
						return nil, err
					}
					members, err := d.Teams.Members(p.Context, tm.ID)
					if err != nil {
						return nil, err
					}
					return d.teamView(p.Context, tm, members)
				},
			},
			"addToTeam": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"teamId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, err := idArg(p, "userId")
					if err != nil {
						return nil, err
					}
					teamID, err := idArg(p, "teamId")
					if err != nil {
						return nil, err
					}
					m, err := d.Teams.AddToTeam(p.Context, userID, teamID)
					if err != nil {
						return nil, err
					}
					u, err := d.UserStore.GetByID(p.Context, m.UserID)
					if err != nil {
						return nil, err
					}
					return userView(u), nil
				},
			},
			"createProject": &graphql.Field{
				Type: graphql.NewNonNull(projectType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createProjectInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					teamID, err := idField(in, "teamId")
					if err != nil {
						return nil, err
					}
					due, _ := optTimeField(in, "dueDate")
					proj, err := d.Projects.Create(p.Context, projects.CreateInput{
						Name:        strField(in, "name"),
						Description: strField(in, "description"),
						DueDate:     due,
						TeamID:      teamID,
					})
					if err != nil {
						return nil, err
					}
					return d.projectView(p.Context, proj)
				},
			},
			"updateProject": &graphql.Field{
				Type: graphql.NewNonNull(projectType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateProjectInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					due, clearDue := optTimeField(in, "dueDate")
					proj, err := d.Projects.Update(p.Context, id, projects.UpdateInput{
						Name:         optStrField(in, "name"),
						Description:  optStrField(in, "description"),
						DueDate:      due,
						ClearDueDate: clearDue,
					})
					if err != nil {
						return nil, err
					}
					return d.projectView(p.Context, proj)
				},
			},
			"deleteProject": &graphql.Field{
				Type: graphql.NewNonNull(projectType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					// Hydrate before the cascade removes the children.
					proj, err := d.Projects.Get(p.Context, id)
					if err != nil {
						return nil, err
					}
					view, err := d.projectView(p.Context, proj)
					if err != nil {
						return nil, err
					}
					if err := d.Projects.Delete(p.Context, id); err != nil {
						return nil, err
					}
					return view, nil
				},
			},
			"createTask": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createTaskInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					projectID, err := idField(in, "projectId")
					if err != nil {
						return nil, err
					}
					status, err := optStatusField(in, "status")
					if err != nil {
						return nil, err
					}
					priority, err := optPriorityField(in, "priority")
					if err != nil {
						return nil, err
					}
					assignee, _, err := optIDField(in, "assigneeId")
					if err != nil {
						return nil, err
					}
					due, _ := optTimeField(in, "dueDate")
					task, err := d.Tasks.Create(p.Context, tasks.CreateInput{
						Title:       strField(in, "title"),
						Description: strField(in, "description"),
						Status:      status,
						Priority:    priority,
						DueDate:     due,
						AssigneeID:  assignee,
						ProjectID:   projectID,
					})
					if err != nil {
						return nil, err
					}
					return d.taskView(p.Context, task)
				},
			},
			"updateTask": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateTaskInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					status, err := optStatusField(in, "status")
					if err != nil {
						return nil, err
					}
					priority, err := optPriorityField(in, "priority")
					if err != nil {
						return nil, err
					}
					assignee, clearAssignee, err := optIDField(in, "assigneeId")
					if err != nil {
						return nil, err
					}
					due, clearDue := optTimeField(in, "dueDate")
					task, err := d.Tasks.Update(p.Context, id, tasks.UpdateInput{
						Title:         optStrField(in, "title"),
						Description:   optStrField(in, "description"),
						Status:        status,
						Priority:      priority,
						DueDate:       due,
						ClearDueDate:  clearDue,
						AssigneeID:    assignee,
						ClearAssignee: clearAssignee,
					})
					if err != nil {
						return nil, err
					}
					return d.taskView(p.Context, task)
				},
			},
			"deleteTask": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := idArg(p, "id")
					if err != nil {
						return nil, err
					}
					task, err := d.Tasks.Get(p.Context, id)
					if err != nil {
						return nil, err
					}
					view, err := d.taskView(p.Context, task)
					if err != nil {
						return nil, err
					}
					if err := d.Tasks.Delete(p.Context, id); err != nil {
						return nil, err
					}
					return view, nil
				},
			},
			"createComment": &graphql.Field{
				Type: graphql.NewNonNull(commentType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createCommentInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					taskID, err := idField(in, "taskId")
					if err != nil {
						return nil, err
					}
					// The input's authorId is ignored; the author is the
					// session user.
					cm, err := d.Comments.Create(p.Context, comments.CreateInput{
						Content: strField(in, "content"),
						TaskID:  taskID,
					})
					if err != nil {
						return nil, err
					}
					return d.commentView(p.Context, cm)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// idArg parses a required id argument.
func idArg(p graphql.ResolveParams, name string) (primitive.ObjectID, error) {
	s, _ := p.Args[name].(string)
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("invalid id for " + name)
	}
	return oid, nil
}

// strArg returns an optional string argument's value, or "".
func strArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

// inputArg returns the coerced "input" argument map.
func inputArg(p graphql.ResolveParams) map[string]interface{} {
	m, _ := p.Args["input"].(map[string]interface{})
	return m
}

// strField returns an input field's string value, or "".
func strField(in map[string]interface{}, name string) string {
	s, _ := in[name].(string)
	return s
}

// optStrField distinguishes "not provided" (nil) from a provided value.
func optStrField(in map[string]interface{}, name string) *string {
	v, ok := in[name]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// optTimeField returns the value if provided, and clear=true if the
// field was provided as an explicit null.
func optTimeField(in map[string]interface{}, name string) (*time.Time, bool) {
	v, ok := in[name]
	if !ok {
		return nil, false
	}
	if v == nil {
		return nil, true
	}
	t, ok := v.(time.Time)
	if !ok {
		return nil, false
	}
	return &t, false
}

// idField parses a required id input field.
func idField(in map[string]interface{}, name string) (primitive.ObjectID, error) {
	s, _ := in[name].(string)
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("invalid id for " + name)
	}
	return oid, nil
}

// optIDField returns the parsed id if provided, and clear=true if the
// field was provided as an explicit null.
func optIDField(in map[string]interface{}, name string) (*primitive.ObjectID, bool, error) {
	v, ok := in[name]
	if !ok {
		return nil, false, nil
	}
	if v == nil {
		return nil, true, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, false, apperr.Invalid("invalid id for " + name)
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, false, apperr.Invalid("invalid id for " + name)
	}
	return &oid, false, nil
}

func optStatusField(in map[string]interface{}, name string) (*models.TaskStatus, error) {
	s := optStrField(in, name)
	if s == nil {
		return nil, nil
	}
	status, err := models.ParseTaskStatus(normalize.Enum(*s))
	if err != nil {
		return nil, apperr.Invalid(err.Error())
	}
	return &status, nil
}

func optPriorityField(in map[string]interface{}, name string) (*models.Priority, error) {
	s := optStrField(in, name)
	if s == nil {
		return nil, nil
	}
	priority, err := models.ParsePriority(normalize.Enum(*s))
	if err != nil {
		return nil, apperr.Invalid(err.Error())
	}
	return &priority, nil
}
