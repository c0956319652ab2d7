// Package main implements the entry point for the Kanban API server,
// which serves boards and their ordered columns over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/kanban-api/internal/config"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
)

// flags holds the parsed command line options.
type flags struct {
	migrate string
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&f.migrate, "migrate", "",
		"run a migration command (up, down, reset, status, version) and exit")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}

// main is the entry point for the kanban-api server.
func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if err := run(context.Background(), f); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until a shutdown signal arrives.
func run(ctx context.Context, f flags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("auto_migrate", cfg.Database.AutoMigrate))

	ctx = logger.WithLogger(ctx, appLogger)

	db, err := setupAppDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return err
	}

	if f.migrate != "" {
		defer func() { _ = db.Close() }()
		return handleMigrations(ctx, db, f.migrate)
	}

	if cfg.Database.AutoMigrate {
		if err := handleMigrations(ctx, db, "up"); err != nil {
			_ = db.Close()
			return err
		}
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
