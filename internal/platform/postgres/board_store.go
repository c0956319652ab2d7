package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// PostgresBoardStore implements the store.BoardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBoardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBoardStore creates a new PostgreSQL implementation of the BoardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresBoardStore(db store.DBTX, logger *slog.Logger) *PostgresBoardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBoardStore{
		db:     db,
		logger: logger.With(slog.String("component", "board_store")),
	}
}

// Ensure PostgresBoardStore implements store.BoardStore interface
var _ store.BoardStore = (*PostgresBoardStore)(nil)

// Create implements store.BoardStore.Create
func (s *PostgresBoardStore) Create(ctx context.Context, board *domain.Board) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := board.Validate(); err != nil {
		log.Warn("board validation failed during create",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return err
	}

	query := `
		INSERT INTO boards (id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		board.ID,
		board.Title,
		board.Description,
		board.CreatedAt,
		board.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create board",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return MapError(err)
	}

	log.Info("board created successfully", slog.String("board_id", board.ID.String()))
	return nil
}

// GetByID implements store.BoardStore.GetByID
// Returns store.ErrBoardNotFound if the board does not exist.
func (s *PostgresBoardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, created_at, updated_at
		FROM boards
		WHERE id = $1
	`

	var board domain.Board
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&board.ID,
		&board.Title,
		&board.Description,
		&board.CreatedAt,
		&board.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("board not found", slog.String("board_id", id.String()))
			return nil, store.ErrBoardNotFound
		}
		log.Error("failed to get board by ID",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return nil, MapError(err)
	}

	return &board, nil
}

// List implements store.BoardStore.List
func (s *PostgresBoardStore) List(ctx context.Context) ([]*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, created_at, updated_at
		FROM boards
		ORDER BY created_at DESC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list boards", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	boards := []*domain.Board{}
	for rows.Next() {
		var board domain.Board
		if err := rows.Scan(
			&board.ID,
			&board.Title,
			&board.Description,
			&board.CreatedAt,
			&board.UpdatedAt,
		); err != nil {
			log.Error("failed to scan board row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		boards = append(boards, &board)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating board rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return boards, nil
}

// Exists implements store.BoardStore.Exists
func (s *PostgresBoardStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM boards WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		log.Error("failed to check board existence",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return false, MapError(err)
	}

	return exists, nil
}

// Lock implements store.BoardStore.Lock
func (s *PostgresBoardStore) Lock(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var locked uuid.UUID
	err := s.db.QueryRowContext(ctx, `SELECT id FROM boards WHERE id = $1 FOR UPDATE`, id).
		Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrBoardNotFound
		}
		log.Error("failed to lock board",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return MapError(err)
	}

	return nil
}

// WithTx implements store.BoardStore.WithTx
func (s *PostgresBoardStore) WithTx(tx *sql.Tx) store.BoardStore {
	return &PostgresBoardStore{
		db:     tx,
		logger: s.logger,
	}
}
