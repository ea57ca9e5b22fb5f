// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/dalemusser/taskflow/internal/app/features/accounts"
	commentsfeature "github.com/dalemusser/taskflow/internal/app/features/comments"
	"github.com/dalemusser/taskflow/internal/app/features/graphqlapi"
	healthfeature "github.com/dalemusser/taskflow/internal/app/features/health"
	projectsfeature "github.com/dalemusser/taskflow/internal/app/features/projects"
	tasksfeature "github.com/dalemusser/taskflow/internal/app/features/tasks"
	teamsfeature "github.com/dalemusser/taskflow/internal/app/features/teams"
	usersfeature "github.com/dalemusser/taskflow/internal/app/features/users"
	commentstore "github.com/dalemusser/taskflow/internal/app/store/comments"
	membershipstore "github.com/dalemusser/taskflow/internal/app/store/memberships"
	projectstore "github.com/dalemusser/taskflow/internal/app/store/projects"
	taskstore "github.com/dalemusser/taskflow/internal/app/store/tasks"
	teamstore "github.com/dalemusser/taskflow/internal/app/store/teams"
	userstore "github.com/dalemusser/taskflow/internal/app/store/users"
	sysauth "github.com/dalemusser/taskflow/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app. WAFFLE calls this after configuration, DB connections,
// schema setup, and any Startup hooks have completed.
//
// TaskFlow serves a single GraphQL endpoint plus a health check. The
// SPA talks to /graphql with credentials, so CORS is locked to one
// configured origin.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Session tokens are secure cookies in production mode.
	secure := coreCfg.Env == "prod"
	tokens, err := sysauth.NewTokenManager(appCfg.JWTSecret, appCfg.SessionCookie, appCfg.SessionDomain, secure, appCfg.SessionTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh user data on each request so role changes and
	// deletions take effect immediately.
	tokens.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	db := deps.MongoDatabase
	users := userstore.New(db)
	teams := teamstore.New(db)
	memberships := membershipstore.New(db)
	projects := projectstore.New(db)
	tasks := taskstore.New(db)
	comments := commentstore.New(db)

	gqlDeps := &graphqlapi.Deps{
		Log:    logger,
		Tokens: tokens,

		Accounts: accountsfeature.New(users, tokens, logger, appCfg.ResetTokenTTL),
		Users:    usersfeature.New(users),
		Teams:    teamsfeature.New(db, teams, memberships, users, logger),
		Projects: projectsfeature.New(db, projects, teams, logger),
		Tasks:    tasksfeature.New(db, tasks, projects, users, logger),
		Comments: commentsfeature.New(comments, tasks, logger),

		UserStore:    users,
		TeamStore:    teams,
		ProjectStore: projects,
		TaskStore:    tasks,
		CommentStore: comments,
	}

	gqlHandler, err := graphqlapi.NewHandler(gqlDeps)
	if err != nil {
		logger.Error("graphql schema build failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// The SPA sends the session cookie cross-origin, so the allowed
	// origin must be explicit (no wildcard with credentials).
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{appCfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global auth middleware: loads the session user into context if a
	// valid token is present.
	r.Use(tokens.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// The API itself
	gqlHandler.Routes(r)

	return r, nil
}
