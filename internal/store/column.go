package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
)

// ColumnStore defines the interface for column data persistence.
//
// Positions of the columns of one board must always form the dense run
// 0..n-1. Only BulkUpdatePositions and Resequence change positions of
// existing rows, and both are meant to run inside a transaction opened with
// RunInTransaction:
//
//	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
//	    txColumns := columnStore.WithTx(tx)
//	    n, err := txColumns.BulkUpdatePositions(ctx, boardID, updates)
//	    ...
//	})
type ColumnStore interface {
	// Create saves a new column at the next free position of its board
	// (current max + 1, or 0 for an empty board) and writes the assigned
	// position back into column.Position.
	// Returns ErrInvalidEntity if the board does not exist.
	Create(ctx context.Context, column *domain.Column) error

	// GetByID retrieves a column by its unique ID.
	// Returns ErrColumnNotFound if the column does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error)

	// ListByBoard returns the columns of a board ordered by position, then ID.
	// Returns an empty slice if the board has no columns.
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)

	// ListIDsByBoard returns the IDs of every column currently in the board.
	ListIDsByBoard(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error)

	// BulkUpdatePositions applies all position updates in a single statement,
	// restricted to columns of boardID, and returns the number of rows it changed.
	// Callers compare that count to len(updates) to detect interference.
	BulkUpdatePositions(ctx context.Context, boardID uuid.UUID, updates []domain.ColumnPosition) (int64, error)

	// LockByBoard takes row locks on every column of a board, in ID order,
	// until the surrounding transaction ends. Concurrent writers to the same
	// board block until then.
	LockByBoard(ctx context.Context, boardID uuid.UUID) error

	// Delete removes a column by ID.
	// Returns ErrColumnNotFound if no row was deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// Resequence renumbers the columns of a board to 0..m-1, keeping their
	// relative order (position, then ID), and returns the number of rows it
	// had to move.
	Resequence(ctx context.Context, boardID uuid.UUID) (int64, error)

	// WithTx returns a new ColumnStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ColumnStore
}
