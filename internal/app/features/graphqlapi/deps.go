// Package graphqlapi assembles the GraphQL schema and serves it over
// POST /graphql. Domain behavior lives in the feature services; this
// package maps GraphQL operations onto them and shapes the results
// into response views.
package graphqlapi

import (
	"github.com/dalemusser/taskflow/internal/app/features/accounts"
	"github.com/dalemusser/taskflow/internal/app/features/comments"
	"github.com/dalemusser/taskflow/internal/app/features/projects"
	"github.com/dalemusser/taskflow/internal/app/features/tasks"
	"github.com/dalemusser/taskflow/internal/app/features/teams"
	"github.com/dalemusser/taskflow/internal/app/features/users"
	"github.com/dalemusser/taskflow/internal/app/store/comments"
	"github.com/dalemusser/taskflow/internal/app/store/projects"
	"github.com/dalemusser/taskflow/internal/app/store/tasks"
	"github.com/dalemusser/taskflow/internal/app/store/teams"
	"github.com/dalemusser/taskflow/internal/app/store/users"
	"github.com/dalemusser/taskflow/internal/app/system/auth"
	"go.uber.org/zap"
)

// Deps carries everything the resolvers need.
type Deps struct {
	Log    *zap.Logger
	Tokens *auth.TokenManager

	Accounts *accounts.Service
	Users    *users.Service
	Teams    *teams.Service
	Projects *projects.Service
	Tasks    *tasks.Service
	Comments *comments.Service

	UserStore    *userstore.Store
	TeamStore    *teamstore.Store
	ProjectStore *projectstore.Store
	TaskStore    *taskstore.Store
	CommentStore *commentstore.Store
}
