package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card at the end of its column and writes the
	// assigned position back into card.Position.
	// Returns ErrInvalidEntity if the column does not exist.
	Create(ctx context.Context, card *domain.Card) error

	// ListByColumn returns the cards of a column ordered by position.
	ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error)

	// DeleteByColumn removes every card of a column and returns how many were removed.
	// It must run in the same transaction as the column delete that follows it.
	DeleteByColumn(ctx context.Context, columnID uuid.UUID) (int64, error)

	// WithTx returns a new CardStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CardStore
}
