// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/schooldesk/internal/app/resources"
	userstore "github.com/dalemusser/schooldesk/internal/app/store/users"
	"github.com/dalemusser/schooldesk/internal/app/system/authutil"
	"github.com/dalemusser/schooldesk/internal/app/system/timeouts"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built: shared
// templates, timeouts, demo data and the bootstrap admin.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	// Config first, env overrides second.
	timeouts.Configure(timeouts.Config{Fetch: appCfg.FetchTimeout})
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}
	t := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Duration("ping", t.Ping),
		zap.Duration("short", t.Short),
		zap.Duration("fetch", t.Fetch),
		zap.Duration("medium", t.Medium),
		zap.Duration("long", t.Long))

	sctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	if appCfg.SeedDemoData {
		if err := seedDemoData(sctx, deps.MongoDatabase, logger); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(sctx, deps.MongoDatabase, appCfg.AdminEmail, appCfg.AdminPassword, logger); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
	}

	return nil
}

// ensureAdmin makes sure a user with email exists and has the admin role.
// An existing user is promoted; a missing password hash is filled in when
// password is given. An existing hash is never replaced.
func ensureAdmin(ctx context.Context, db *mongo.Database, email, password string, logger *zap.Logger) error {
	users := userstore.New(db)

	var hash string
	if password != "" {
		if err := authutil.ValidatePassword(password); err != nil {
			return err
		}
		h, err := authutil.HashPassword(password)
		if err != nil {
			return err
		}
		hash = h
	}

	u, err := users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		nu := models.User{FullName: "Administrator", Email: email, Role: models.RoleAdmin}
		if hash != "" {
			nu.PasswordHash = &hash
		}
		created, err := users.Create(ctx, nu)
		if err != nil {
			return err
		}
		if hash == "" {
			logger.Warn("admin created without a password; sign-in is disabled until one is set",
				zap.String("email", created.Email))
		}
		logger.Info("admin user created", zap.String("user_id", created.ID.Hex()), zap.String("email", created.Email))
		return nil
	}
	if err != nil {
		return err
	}

	if u.Role != models.RoleAdmin {
		if err := users.SetRole(ctx, u.ID, models.RoleAdmin); err != nil {
			return err
		}
		logger.Info("user promoted to admin", zap.String("user_id", u.ID.Hex()), zap.String("previous_role", u.Role))
	}
	if hash != "" && (u.PasswordHash == nil || *u.PasswordHash == "") {
		if err := users.SetPasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		logger.Info("admin password set", zap.String("user_id", u.ID.Hex()))
	}
	return nil
}
