package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/config"
	"github.com/phrazzld/kanban-api/internal/events"
	"github.com/phrazzld/kanban-api/internal/platform/postgres"
	"github.com/phrazzld/kanban-api/internal/service"
	"github.com/phrazzld/kanban-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	boardStore  store.BoardStore
	columnStore store.ColumnStore
	cardStore   store.CardStore

	eventEmitter *events.InMemoryEventEmitter

	boardService  service.BoardService
	columnService service.ColumnService
	cardService   service.CardService
}

// newApplication wires the stores and services on top of an established
// database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.boardStore = postgres.NewPostgresBoardStore(db, logger)
	app.columnStore = postgres.NewPostgresColumnStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(logger))

	boardRepo := service.NewBoardRepositoryAdapter(app.boardStore)
	columnRepo := service.NewColumnRepositoryAdapter(app.columnStore, db)
	cardRepo := service.NewCardRepositoryAdapter(app.cardStore)

	var err error
	app.boardService, err = service.NewBoardService(boardRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create board service: %w", err)
	}

	app.columnService, err = service.NewColumnService(
		boardRepo,
		columnRepo,
		cardRepo,
		logger,
		service.WithEventEmitter(app.eventEmitter),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create column service: %w", err)
	}

	app.cardService, err = service.NewCardService(boardRepo, columnRepo, cardRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	return app, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
