package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/store"
)

// BoardRepository defines the board operations the services need.
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	List(ctx context.Context) ([]*domain.Board, error)

	// Exists reports whether a board with the given ID exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Lock takes a row lock on the board for the rest of the transaction
	Lock(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) BoardRepository
}

// ColumnRepository defines the repository interface for the service layer
type ColumnRepository interface {
	Create(ctx context.Context, column *domain.Column) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)
	ListIDsByBoard(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error)
	BulkUpdatePositions(ctx context.Context, boardID uuid.UUID, updates []domain.ColumnPosition) (int64, error)
	LockByBoard(ctx context.Context, boardID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Resequence(ctx context.Context, boardID uuid.UUID) (int64, error)

	// WithTx returns a new repository instance that uses the provided transaction
	// This is used for transactional operations
	WithTx(tx *sql.Tx) ColumnRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// CardRepository defines the card operations the services need.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error)

	// DeleteByColumn removes every card of a column
	DeleteByColumn(ctx context.Context, columnID uuid.UUID) (int64, error)

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) CardRepository
}

// NewBoardRepositoryAdapter creates a new adapter that allows a store.BoardStore
// to be used where a BoardRepository is expected.
func NewBoardRepositoryAdapter(boardStore store.BoardStore) BoardRepository {
	return &boardRepositoryAdapter{boardStore: boardStore}
}

// boardRepositoryAdapter adapts a store.BoardStore to the BoardRepository interface
type boardRepositoryAdapter struct {
	boardStore store.BoardStore
}

func (a *boardRepositoryAdapter) Create(ctx context.Context, board *domain.Board) error {
	return a.boardStore.Create(ctx, board)
}

func (a *boardRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	return a.boardStore.GetByID(ctx, id)
}

func (a *boardRepositoryAdapter) List(ctx context.Context) ([]*domain.Board, error) {
	return a.boardStore.List(ctx)
}

func (a *boardRepositoryAdapter) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return a.boardStore.Exists(ctx, id)
}

func (a *boardRepositoryAdapter) Lock(ctx context.Context, id uuid.UUID) error {
	return a.boardStore.Lock(ctx, id)
}

func (a *boardRepositoryAdapter) WithTx(tx *sql.Tx) BoardRepository {
	return &boardRepositoryAdapter{boardStore: a.boardStore.WithTx(tx)}
}

// NewColumnRepositoryAdapter creates a new adapter that allows a store.ColumnStore
// to be used where a ColumnRepository is expected.
func NewColumnRepositoryAdapter(columnStore store.ColumnStore, db *sql.DB) ColumnRepository {
	return &columnRepositoryAdapter{
		ColumnStore: columnStore,
		db:          db,
	}
}

// columnRepositoryAdapter adapts a store.ColumnStore to the ColumnRepository
// interface. Store methods are promoted from the embedded interface.
type columnRepositoryAdapter struct {
	store.ColumnStore
	db *sql.DB
}

// WithTx implements ColumnRepository.WithTx
func (a *columnRepositoryAdapter) WithTx(tx *sql.Tx) ColumnRepository {
	return &columnRepositoryAdapter{
		ColumnStore: a.ColumnStore.WithTx(tx),
		db:          a.db,
	}
}

// DB implements ColumnRepository.DB
func (a *columnRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewCardRepositoryAdapter creates a new adapter that allows a store.CardStore
// to be used where a CardRepository is expected.
func NewCardRepositoryAdapter(cardStore store.CardStore) CardRepository {
	return &cardRepositoryAdapter{cardStore: cardStore}
}

// cardRepositoryAdapter adapts a store.CardStore to the CardRepository interface
type cardRepositoryAdapter struct {
	cardStore store.CardStore
}

func (a *cardRepositoryAdapter) Create(ctx context.Context, card *domain.Card) error {
	return a.cardStore.Create(ctx, card)
}

func (a *cardRepositoryAdapter) ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error) {
	return a.cardStore.ListByColumn(ctx, columnID)
}

func (a *cardRepositoryAdapter) DeleteByColumn(ctx context.Context, columnID uuid.UUID) (int64, error) {
	return a.cardStore.DeleteByColumn(ctx, columnID)
}

func (a *cardRepositoryAdapter) WithTx(tx *sql.Tx) CardRepository {
	return &cardRepositoryAdapter{cardStore: a.cardStore.WithTx(tx)}
}
