package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

const columnColumns = `id, board_id, title, position, created_at, updated_at`

// Positions are written in one statement and the deferred uniqueness check is
// forced right after it, so a collision surfaces here rather than at commit.
const checkColumnPositionsQuery = `SET CONSTRAINTS board_columns_board_position_key IMMEDIATE`

// PostgresColumnStore implements the store.ColumnStore interface
// using a PostgreSQL database as the storage backend.
type PostgresColumnStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresColumnStore creates a new PostgreSQL implementation of the ColumnStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresColumnStore(db store.DBTX, logger *slog.Logger) *PostgresColumnStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresColumnStore{
		db:     db,
		logger: logger.With(slog.String("component", "column_store")),
	}
}

// Ensure PostgresColumnStore implements store.ColumnStore interface
var _ store.ColumnStore = (*PostgresColumnStore)(nil)

// Create implements store.ColumnStore.Create
// The column is appended after the current last column of its board.
// Returns store.ErrInvalidEntity if the board doesn't exist (foreign key violation).
func (s *PostgresColumnStore) Create(ctx context.Context, column *domain.Column) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := column.Validate(); err != nil {
		log.Warn("column validation failed during create",
			slog.String("error", err.Error()),
			slog.String("column_id", column.ID.String()))
		return err
	}

	query := `
		INSERT INTO board_columns (id, board_id, title, position, created_at, updated_at)
		SELECT $1::uuid, $2::uuid, $3::text, COALESCE(MAX(position), -1) + 1,
			$4::timestamptz, $5::timestamptz
		FROM board_columns
		WHERE board_id = $2
		RETURNING position
	`

	var position int
	err := s.db.QueryRowContext(
		ctx,
		query,
		column.ID,
		column.BoardID,
		column.Title,
		column.CreatedAt,
		column.UpdatedAt,
	).Scan(&position)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during column creation",
				slog.String("column_id", column.ID.String()),
				slog.String("board_id", column.BoardID.String()))
			return fmt.Errorf("%w: board with ID %s not found",
				store.ErrInvalidEntity, column.BoardID)
		}
		log.Error("failed to create column",
			slog.String("error", err.Error()),
			slog.String("column_id", column.ID.String()),
			slog.String("board_id", column.BoardID.String()))
		return MapError(err)
	}

	column.Position = position

	log.Info("column created successfully",
		slog.String("column_id", column.ID.String()),
		slog.String("board_id", column.BoardID.String()),
		slog.Int("position", position))
	return nil
}

// GetByID implements store.ColumnStore.GetByID
// Returns store.ErrColumnNotFound if the column does not exist.
func (s *PostgresColumnStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + columnColumns + ` FROM board_columns WHERE id = $1`

	var column domain.Column
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&column.ID,
		&column.BoardID,
		&column.Title,
		&column.Position,
		&column.CreatedAt,
		&column.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("column not found", slog.String("column_id", id.String()))
			return nil, store.ErrColumnNotFound
		}
		log.Error("failed to get column by ID",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()))
		return nil, MapError(err)
	}

	return &column, nil
}

// ListByBoard implements store.ColumnStore.ListByBoard
func (s *PostgresColumnStore) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + columnColumns + `
		FROM board_columns
		WHERE board_id = $1
		ORDER BY position ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, boardID)
	if err != nil {
		log.Error("failed to list columns",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	columns := []*domain.Column{}
	for rows.Next() {
		var column domain.Column
		if err := rows.Scan(
			&column.ID,
			&column.BoardID,
			&column.Title,
			&column.Position,
			&column.CreatedAt,
			&column.UpdatedAt,
		); err != nil {
			log.Error("failed to scan column row",
				slog.String("error", err.Error()),
				slog.String("board_id", boardID.String()))
			return nil, MapError(err)
		}
		columns = append(columns, &column)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating column rows",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, MapError(err)
	}

	return columns, nil
}

// ListIDsByBoard implements store.ColumnStore.ListIDsByBoard
func (s *PostgresColumnStore) ListIDsByBoard(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM board_columns WHERE board_id = $1`, boardID)
	if err != nil {
		log.Error("failed to list column IDs",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return ids, nil
}

// BulkUpdatePositions implements store.ColumnStore.BulkUpdatePositions
// IDs and positions are bound as two parallel arrays and joined with unnest,
// so the whole permutation is one statement regardless of board size.
func (s *PostgresColumnStore) BulkUpdatePositions(
	ctx context.Context,
	boardID uuid.UUID,
	updates []domain.ColumnPosition,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(updates) == 0 {
		return 0, nil
	}

	ids := make([]string, len(updates))
	positions := make([]int32, len(updates))
	for i, u := range updates {
		ids[i] = u.ID.String()
		positions[i] = int32(u.Position)
	}

	query := `
		UPDATE board_columns AS c
		SET position = v.position, updated_at = NOW()
		FROM unnest($1::text[], $2::int4[]) AS v(id, position)
		WHERE c.board_id = $3 AND c.id = v.id::uuid
	`

	result, err := s.db.ExecContext(ctx, query, ids, positions, boardID)
	if err != nil {
		log.Error("failed to update column positions",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()),
			slog.Int("column_count", len(updates)))
		return 0, MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, checkColumnPositionsQuery); err != nil {
		log.Warn("column positions collided after bulk update",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return 0, MapError(err)
	}

	log.Debug("column positions updated",
		slog.String("board_id", boardID.String()),
		slog.Int("requested", len(updates)),
		slog.Int64("affected", affected))
	return affected, nil
}

// LockByBoard implements store.ColumnStore.LockByBoard
func (s *PostgresColumnStore) LockByBoard(ctx context.Context, boardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id
		FROM board_columns
		WHERE board_id = $1
		ORDER BY id
		FOR UPDATE
	`

	rows, err := s.db.QueryContext(ctx, query, boardID)
	if err != nil {
		log.Error("failed to lock board columns",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	locked := 0
	for rows.Next() {
		locked++
	}
	if err := rows.Err(); err != nil {
		return MapError(err)
	}

	log.Debug("board columns locked",
		slog.String("board_id", boardID.String()),
		slog.Int("locked", locked))
	return nil
}

// Delete implements store.ColumnStore.Delete
// Returns store.ErrColumnNotFound if the column does not exist.
func (s *PostgresColumnStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM board_columns WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete column",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrColumnNotFound); err != nil {
		log.Debug("column not deleted",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()))
		return err
	}

	log.Info("column deleted", slog.String("column_id", id.String()))
	return nil
}

// Resequence implements store.ColumnStore.Resequence
// Columns keep their relative order; ties on position fall back to ID.
// Only rows whose position changes are written.
func (s *PostgresColumnStore) Resequence(ctx context.Context, boardID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE board_columns AS c
		SET position = r.new_position, updated_at = NOW()
		FROM (
			SELECT id, (ROW_NUMBER() OVER (ORDER BY position ASC, id ASC) - 1)::int AS new_position
			FROM board_columns
			WHERE board_id = $1
		) AS r
		WHERE c.id = r.id AND c.position <> r.new_position
	`

	result, err := s.db.ExecContext(ctx, query, boardID)
	if err != nil {
		log.Error("failed to resequence columns",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return 0, MapError(err)
	}

	moved, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, checkColumnPositionsQuery); err != nil {
		log.Warn("column positions collided after resequence",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return 0, MapError(err)
	}

	log.Debug("columns resequenced",
		slog.String("board_id", boardID.String()),
		slog.Int64("moved", moved))
	return moved, nil
}

// WithTx implements store.ColumnStore.WithTx
func (s *PostgresColumnStore) WithTx(tx *sql.Tx) store.ColumnStore {
	return &PostgresColumnStore{
		db:     tx,
		logger: s.logger,
	}
}
