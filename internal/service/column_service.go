package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/events"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// ColumnService provides column ordering operations.
type ColumnService interface {
	// CreateColumn appends a new column to the end of a board.
	CreateColumn(ctx context.Context, boardID uuid.UUID, title string) (*domain.Column, error)

	// ListColumns returns the columns of a board in position order.
	ListColumns(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)

	// ReorderColumns applies a complete new ordering to a board's columns and
	// returns them in their new order.
	ReorderColumns(
		ctx context.Context,
		boardID uuid.UUID,
		candidate []domain.ColumnPosition,
	) ([]*domain.Column, error)

	// DeleteColumn removes a column together with its cards and closes the
	// gap it leaves in the board's positions.
	DeleteColumn(ctx context.Context, columnID uuid.UUID) error
}

// columnServiceImpl implements the ColumnService interface
type columnServiceImpl struct {
	boardRepo  BoardRepository
	columnRepo ColumnRepository
	cardRepo   CardRepository
	emitter    events.EventEmitter
	logger     *slog.Logger
}

// ColumnServiceOption configures optional ColumnService dependencies.
type ColumnServiceOption func(*columnServiceImpl)

// WithEventEmitter publishes a board event after every committed change.
func WithEventEmitter(emitter events.EventEmitter) ColumnServiceOption {
	return func(s *columnServiceImpl) {
		s.emitter = emitter
	}
}

// NewColumnService creates a new ColumnService
// It returns an error if any of the required dependencies are nil.
func NewColumnService(
	boardRepo BoardRepository,
	columnRepo ColumnRepository,
	cardRepo CardRepository,
	logger *slog.Logger,
	opts ...ColumnServiceOption,
) (ColumnService, error) {
	if boardRepo == nil {
		return nil, domain.NewValidationError("boardRepo", "cannot be nil", domain.ErrValidation)
	}
	if columnRepo == nil {
		return nil, domain.NewValidationError("columnRepo", "cannot be nil", domain.ErrValidation)
	}
	if cardRepo == nil {
		return nil, domain.NewValidationError("cardRepo", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &columnServiceImpl{
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
		cardRepo:   cardRepo,
		logger:     logger.With(slog.String("component", "column_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// publish emits a board event. The change has already committed, so a
// failure is logged and not returned.
func (s *columnServiceImpl) publish(ctx context.Context, eventType string, boardID uuid.UUID, payload interface{}) {
	if s.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewBoardEvent(eventType, boardID, payload)
	if err == nil {
		err = s.emitter.EmitEvent(ctx, event)
	}
	if err != nil {
		log.Error("failed to publish board event",
			slog.String("event_type", eventType),
			slog.String("board_id", boardID.String()),
			slog.String("error", err.Error()))
	}
}

// CreateColumn implements ColumnService.CreateColumn
// The board row is locked so concurrent creates on one board take turns
// choosing the next position.
func (s *columnServiceImpl) CreateColumn(
	ctx context.Context,
	boardID uuid.UUID,
	title string,
) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	column, err := domain.NewColumn(boardID, title)
	if err != nil {
		log.Debug("invalid column", slog.String("error", err.Error()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.columnRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		if err := s.boardRepo.WithTx(tx).Lock(ctx, boardID); err != nil {
			return err
		}
		return s.columnRepo.WithTx(tx).Create(ctx, column)
	})
	if err != nil {
		log.Debug("failed to create column",
			slog.String("board_id", boardID.String()),
			slog.String("error", err.Error()))
		return nil, wrapUnexpected("create", "failed to create column", err)
	}

	log.Info("column created",
		slog.String("board_id", boardID.String()),
		slog.String("column_id", column.ID.String()),
		slog.Int("position", column.Position))
	s.publish(ctx, events.TypeColumnCreated, boardID, events.ColumnCreatedPayload{
		ColumnID: column.ID,
		Position: column.Position,
	})
	return column, nil
}

// ListColumns implements ColumnService.ListColumns
func (s *columnServiceImpl) ListColumns(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	exists, err := s.boardRepo.Exists(ctx, boardID)
	if err != nil {
		return nil, wrapUnexpected("list", "failed to check board", err)
	}
	if !exists {
		return nil, store.ErrBoardNotFound
	}

	columns, err := s.columnRepo.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, wrapUnexpected("list", "failed to list columns", err)
	}
	return columns, nil
}

// ReorderColumns implements ColumnService.ReorderColumns
//
// The candidate is checked against the board's membership as read inside the
// transaction. The write is one statement scoped to the board; if it changes
// fewer rows than the candidate names, a column was removed concurrently and
// the whole transaction is rolled back with store.ErrConcurrentModification.
func (s *columnServiceImpl) ReorderColumns(
	ctx context.Context,
	boardID uuid.UUID,
	candidate []domain.ColumnPosition,
) ([]*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).
		With(slog.String("board_id", boardID.String()))

	var ordered []*domain.Column
	err := store.RunInTransaction(ctx, s.columnRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txBoards := s.boardRepo.WithTx(tx)
		txColumns := s.columnRepo.WithTx(tx)

		exists, err := txBoards.Exists(ctx, boardID)
		if err != nil {
			return err
		}
		if !exists {
			return store.ErrBoardNotFound
		}

		current, err := txColumns.ListIDsByBoard(ctx, boardID)
		if err != nil {
			return err
		}

		if err := domain.ValidatePermutation(current, candidate); err != nil {
			log.Debug("rejected column ordering", slog.String("error", err.Error()))
			return err
		}

		if len(candidate) > 0 {
			affected, err := txColumns.BulkUpdatePositions(ctx, boardID, candidate)
			if err != nil {
				return err
			}
			if affected != int64(len(candidate)) {
				log.Warn("column reorder lost a race",
					slog.Int("expected", len(candidate)),
					slog.Int64("affected", affected))
				return store.ErrConcurrentModification
			}
		}

		ordered, err = txColumns.ListByBoard(ctx, boardID)
		return err
	})
	if err != nil {
		return nil, wrapUnexpected("reorder", "failed to reorder columns", err)
	}

	if ordered == nil {
		ordered = []*domain.Column{}
	}

	log.Info("columns reordered", slog.Int("column_count", len(ordered)))
	if len(candidate) > 0 {
		ids := make([]uuid.UUID, len(ordered))
		for i, c := range ordered {
			ids[i] = c.ID
		}
		s.publish(ctx, events.TypeColumnsReordered, boardID, events.ColumnsReorderedPayload{ColumnIDs: ids})
	}
	return ordered, nil
}

// DeleteColumn implements ColumnService.DeleteColumn
//
// Cards go first, then the column, then the survivors are renumbered. The
// board row and the board's columns stay locked from the start, so a create
// on the same board waits for the delete and a reorder that overlaps it waits
// and then sees the missing row.
func (s *columnServiceImpl) DeleteColumn(ctx context.Context, columnID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger).
		With(slog.String("column_id", columnID.String()))

	var deleted events.ColumnDeletedPayload
	var boardID uuid.UUID
	err := store.RunInTransaction(ctx, s.columnRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txColumns := s.columnRepo.WithTx(tx)

		column, err := txColumns.GetByID(ctx, columnID)
		if err != nil {
			return err
		}

		// Board first, then columns: the same order CreateColumn uses, so a
		// create in flight on this board commits before the renumber reads.
		if err := s.boardRepo.WithTx(tx).Lock(ctx, column.BoardID); err != nil {
			return err
		}
		if err := txColumns.LockByBoard(ctx, column.BoardID); err != nil {
			return err
		}

		cards, err := s.cardRepo.WithTx(tx).DeleteByColumn(ctx, columnID)
		if err != nil {
			return err
		}

		if err := txColumns.Delete(ctx, columnID); err != nil {
			return err
		}

		moved, err := txColumns.Resequence(ctx, column.BoardID)
		if err != nil {
			return err
		}

		boardID = column.BoardID
		deleted = events.ColumnDeletedPayload{ColumnID: columnID, CardsDeleted: cards, ColumnsMoved: moved}
		return nil
	})
	if err != nil {
		return wrapUnexpected("delete", "failed to delete column", err)
	}

	log.Info("column deleted",
		slog.String("board_id", boardID.String()),
		slog.Int64("cards_deleted", deleted.CardsDeleted),
		slog.Int64("columns_moved", deleted.ColumnsMoved))
	s.publish(ctx, events.TypeColumnDeleted, boardID, deleted)
	return nil
}
