package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/config"
	"github.com/phrazzld/mesto-api/internal/platform/memory"
	"github.com/phrazzld/mesto-api/internal/platform/postgres"
	"github.com/phrazzld/mesto-api/internal/service"
	"github.com/phrazzld/mesto-api/internal/service/auth"
	"github.com/phrazzld/mesto-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB // nil with the memory backend

	userStore store.UserStore
	cardStore store.CardStore

	tokenService auth.TokenService
	userService  service.UserService
	cardService  service.CardService
}

// newApplication wires stores, services and the token service for cfg.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &application{config: cfg, logger: logger}

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	tokens, err := auth.NewJWTService(cfg.Server.Environment, cfg.Auth.JWTSecret, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	app.tokenService = tokens

	app.userService = service.NewUserService(app.userStore, auth.NewBcryptHasher(cfg.Auth.BcryptCost), logger)
	app.cardService = service.NewCardService(app.cardStore, logger)

	return app, nil
}

func (app *application) setupStores(ctx context.Context) error {
	switch app.config.Database.Backend {
	case config.BackendPostgres:
		db, err := setupAppDatabase(ctx, app.config, app.logger)
		if err != nil {
			return err
		}
		app.db = db
		app.userStore = postgres.NewPostgresUserStore(db, app.logger)
		app.cardStore = postgres.NewPostgresCardStore(db, app.logger)
	default:
		app.logger.Warn("using in-memory storage; data is lost on restart")
		users := memory.NewUserStore(app.logger)
		app.userStore = users
		app.cardStore = memory.NewCardStore(app.logger, memory.WithOwners(users))
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
		return
	}
	app.db = nil
	app.logger.Info("Database connection closed")
}
