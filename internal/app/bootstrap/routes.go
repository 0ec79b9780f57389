// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/dalemusser/schooldesk/internal/app/features/dashboard"
	_ "github.com/dalemusser/schooldesk/internal/app/features/dashboard/views"
	departmentsfeature "github.com/dalemusser/schooldesk/internal/app/features/departments"
	errorsfeature "github.com/dalemusser/schooldesk/internal/app/features/errors"
	healthfeature "github.com/dalemusser/schooldesk/internal/app/features/health"
	loginfeature "github.com/dalemusser/schooldesk/internal/app/features/login"
	logoutfeature "github.com/dalemusser/schooldesk/internal/app/features/logout"
	subjectsfeature "github.com/dalemusser/schooldesk/internal/app/features/subjects"
	userstore "github.com/dalemusser/schooldesk/internal/app/store/users"
	"github.com/dalemusser/schooldesk/internal/app/system/auth"
	"github.com/dalemusser/schooldesk/internal/app/system/memo"
	"github.com/dalemusser/schooldesk/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// SchoolDesk initializes the template engine, applies session middleware,
// and mounts the login, dashboard, subject and department routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Re-read the user on each request so role changes and disabled
	// accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Dev mode enables template reloading.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Loads SessionUser into context when signed in.
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Redis, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Get("/", serveRoot)

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Dashboard
	summaries := newSummaryMemo(appCfg, deps, logger)
	dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, summaries, appCfg.ListPageSize, errLog, logger)
	if appCfg.FetchTimeout > 0 {
		dashboardHandler.FetchTimeout = appCfg.FetchTimeout
	}
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Subjects (form and JSON API share one handler, so one in-flight guard)
	subjectsHandler := subjectsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/subjects", subjectsfeature.Routes(subjectsHandler, sessionMgr))
	r.Mount("/api/subjects", subjectsfeature.APIRoutes(subjectsHandler, sessionMgr))

	departmentsHandler := departmentsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/departments", departmentsfeature.Routes(departmentsHandler, sessionMgr))

	return r, nil
}

// serveRoot sends signed-in users to their dashboard and everyone else to
// the login page.
func serveRoot(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// newSummaryMemo layers the in-process LRU in front of Redis. Either layer
// may be absent; with neither, summaries are computed on every request.
func newSummaryMemo(appCfg AppConfig, deps DBDeps, logger *zap.Logger) *memo.Memo {
	var stores []memo.Store
	if appCfg.SummaryCacheSize > 0 {
		stores = append(stores, memo.NewLRU(appCfg.SummaryCacheSize, appCfg.SummaryCacheTTL))
	}
	if deps.Redis != nil {
		stores = append(stores, memo.NewRedis(deps.Redis, appCfg.SummaryCacheTTL, logger))
	}

	var store memo.Store
	if len(stores) > 0 {
		store = memo.Chain(stores...)
	}
	logger.Info("dashboard summary cache",
		zap.Int("layers", len(stores)),
		zap.Duration("ttl", appCfg.SummaryCacheTTL))
	return memo.New(store, metrics.Aggregator{NominalCapacity: appCfg.NominalClassCapacity}, logger)
}
