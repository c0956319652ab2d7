package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
)

// BoardStore defines the interface for board data persistence.
type BoardStore interface {
	// Create saves a new board.
	// Returns validation errors if the board data is invalid.
	Create(ctx context.Context, board *domain.Board) error

	// GetByID retrieves a board by its unique ID.
	// Returns ErrBoardNotFound if the board does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)

	// List returns all boards, newest first.
	List(ctx context.Context) ([]*domain.Board, error)

	// Exists reports whether a board with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Lock takes a row lock on the board until the surrounding transaction ends.
	// Returns ErrBoardNotFound if the board does not exist.
	Lock(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new BoardStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) BoardStore
}
