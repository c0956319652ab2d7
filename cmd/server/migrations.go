package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/platform/postgres"
)

// validMigrationCommands lists the commands accepted by the -migrate flag.
var validMigrationCommands = map[string]bool{
	postgres.MigrateUp:      true,
	postgres.MigrateDown:    true,
	postgres.MigrateReset:   true,
	postgres.MigrateStatus:  true,
	postgres.MigrateVersion: true,
}

// handleMigrations runs a single migration command against db.
// All log lines carry a correlation ID for the whole operation.
func handleMigrations(ctx context.Context, db *sql.DB, command string) error {
	if !validMigrationCommands[command] {
		return fmt.Errorf("unsupported migration command %q", command)
	}

	log := logger.FromContextOrDefault(ctx, slog.Default()).With(
		slog.String("correlation_id", uuid.NewString()),
		slog.String("component", "migrations"),
		slog.String("command", command),
	)
	ctx = logger.WithLogger(ctx, log)

	start := time.Now()
	log.Info("Starting migration operation")

	if err := postgres.RunMigration(ctx, db, command); err != nil {
		log.Error("Migration failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("Migration completed", slog.Duration("duration", time.Since(start)))
	return nil
}
