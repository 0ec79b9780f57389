// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS); everything specific
// to SchoolDesk lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: schooldesk-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Redis (optional shared backend for the dashboard summary cache)
	RedisAddr     string // blank disables Redis
	RedisPassword string
	RedisDB       int

	// Dashboard
	SummaryCacheTTL      time.Duration // lifetime of a cached summary
	SummaryCacheSize     int           // in-process entries; 0 disables the in-process cache
	ListPageSize         int           // records fetched per collection
	NominalClassCapacity int           // seats assumed per class for "Available"
	FetchTimeout         time.Duration // per-collection list timeout

	// Startup data
	SeedDemoData  bool   // insert demo departments, classes, users and subjects
	AdminEmail    string // ensure an admin with this email exists
	AdminPassword string // initial password for a newly created admin
}
