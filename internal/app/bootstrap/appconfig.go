// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, environment); AppConfig is everything specific to this
// application. The struct is passed to most lifecycle hooks, so any
// configuration needed during startup, request handling, or shutdown
// lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session token configuration
	JWTSecret     string        // Secret for signing session tokens (must be strong in production)
	SessionCookie string        // Cookie name for the session token (default: taskflow_session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionTTL    time.Duration // Session token lifetime

	// Password reset
	ResetTokenTTL time.Duration // How long reset tokens stay valid

	// Browser client configuration
	CORSOrigin string // Single allowed origin for the SPA (credentials mode)
}
