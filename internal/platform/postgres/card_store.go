package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// Create implements store.CardStore.Create
// Returns store.ErrInvalidEntity if the column doesn't exist (foreign key violation).
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO cards (id, column_id, title, description, position, created_at, updated_at)
		SELECT $1::uuid, $2::uuid, $3::text, $4::text, COALESCE(MAX(position), -1) + 1,
			$5::timestamptz, $6::timestamptz
		FROM cards
		WHERE column_id = $2
		RETURNING position
	`

	var position int
	err := s.db.QueryRowContext(
		ctx,
		query,
		card.ID,
		card.ColumnID,
		card.Title,
		card.Description,
		card.CreatedAt,
		card.UpdatedAt,
	).Scan(&position)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during card creation",
				slog.String("card_id", card.ID.String()),
				slog.String("column_id", card.ColumnID.String()))
			return fmt.Errorf("%w: column with ID %s not found",
				store.ErrInvalidEntity, card.ColumnID)
		}
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	card.Position = position

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("column_id", card.ColumnID.String()),
		slog.Int("position", position))
	return nil
}

// ListByColumn implements store.CardStore.ListByColumn
func (s *PostgresCardStore) ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, column_id, title, description, position, created_at, updated_at
		FROM cards
		WHERE column_id = $1
		ORDER BY position ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, columnID)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("column_id", columnID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	cards := []*domain.Card{}
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.ColumnID,
			&card.Title,
			&card.Description,
			&card.Position,
			&card.CreatedAt,
			&card.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

// DeleteByColumn implements store.CardStore.DeleteByColumn
func (s *PostgresCardStore) DeleteByColumn(ctx context.Context, columnID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE column_id = $1`, columnID)
	if err != nil {
		log.Error("failed to delete cards of column",
			slog.String("error", err.Error()),
			slog.String("column_id", columnID.String()))
		return 0, MapError(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Debug("cards deleted with column",
		slog.String("column_id", columnID.String()),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}
