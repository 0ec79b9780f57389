// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/schooldesk/internal/app/system/authutil"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for SchoolDesk.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: SCHOOLDESK_MONGO_URI, SCHOOLDESK_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "schooldesk", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "schooldesk-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime (e.g., 8h, 24h)"},

	// Redis
	{Name: "redis_addr", Default: "", Desc: "Redis address for the shared summary cache (blank disables)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},

	// Dashboard
	{Name: "summary_cache_ttl", Default: "5m", Desc: "Lifetime of a cached dashboard summary"},
	{Name: "summary_cache_size", Default: 256, Desc: "In-process summary cache entries (0 disables)"},
	{Name: "list_page_size", Default: 100, Desc: "Records fetched per collection for the dashboard"},
	{Name: "nominal_class_capacity", Default: 50, Desc: "Seats assumed per class when computing availability"},
	{Name: "fetch_timeout", Default: "5s", Desc: "Timeout for each dashboard list fetch"},

	// Startup data
	{Name: "seed_demo_data", Default: false, Desc: "Insert demo records on startup (idempotent)"},
	{Name: "admin_email", Default: "", Desc: "Email of an admin user to ensure on startup"},
	{Name: "admin_password", Default: "", Desc: "Initial password for a newly created admin"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, SCHOOLDESK_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SCHOOLDESK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		SessionMaxAge:    appValues.Duration("session_max_age", 24*time.Hour),

		RedisAddr:     appValues.String("redis_addr"),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),

		SummaryCacheTTL:      appValues.Duration("summary_cache_ttl", 5*time.Minute),
		SummaryCacheSize:     appValues.Int("summary_cache_size"),
		ListPageSize:         appValues.Int("list_page_size"),
		NominalClassCapacity: appValues.Int("nominal_class_capacity"),
		FetchTimeout:         appValues.Duration("fetch_timeout", 5*time.Second),

		SeedDemoData:  appValues.Bool("seed_demo_data"),
		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// SchoolDesk validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect, and rejects dashboard
// settings that would make every figure meaningless.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.ListPageSize <= 0 {
		return fmt.Errorf("list_page_size must be positive, got %d", appCfg.ListPageSize)
	}
	if appCfg.NominalClassCapacity <= 0 {
		return fmt.Errorf("nominal_class_capacity must be positive, got %d", appCfg.NominalClassCapacity)
	}
	if appCfg.SummaryCacheSize < 0 {
		return fmt.Errorf("summary_cache_size must not be negative, got %d", appCfg.SummaryCacheSize)
	}
	if appCfg.AdminPassword != "" {
		if err := authutil.ValidatePassword(appCfg.AdminPassword); err != nil {
			return fmt.Errorf("admin_password: %w", err)
		}
	}
	if coreCfg != nil && coreCfg.Env == "prod" && len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters in production")
	}
	return nil
}
