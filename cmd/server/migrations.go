package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/config"
	"github.com/phrazzld/mesto-api/internal/platform/postgres"
)

// errMigrationsNeedPostgres is returned when -migrate runs against the memory backend.
var errMigrationsNeedPostgres = errors.New("migrations require database.backend=postgres")

// runMigrations applies the embedded schema migrations with the given goose command.
func runMigrations(ctx context.Context, cfg *config.Config, command string) error {
	if cfg.Database.Backend != config.BackendPostgres {
		return errMigrationsNeedPostgres
	}

	db, err := setupAppDatabase(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			slog.Error("Failed to close database connection", "error", cerr)
		}
	}()

	slog.Info("Executing migrations", "command", command)
	if err := postgres.Migrate(ctx, db, command, slog.Default()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Migrations completed", "command", command)
	return nil
}
