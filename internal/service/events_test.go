package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/events"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingEmitter captures emitted events.
type recordingEmitter struct {
	events []*events.BoardEvent
	err    error
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.BoardEvent) error {
	e.events = append(e.events, event)
	return e.err
}

func newEmittingFixture(t *testing.T, emitter events.EventEmitter) *columnServiceFixture {
	t.Helper()

	db, txMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &columnServiceFixture{
		boards:  &MockBoardRepository{},
		columns: &MockColumnRepository{db: db},
		cards:   &MockCardRepository{},
		tx:      txMock,
	}
	f.svc, err = NewColumnService(f.boards, f.columns, f.cards, nil, WithEventEmitter(emitter))
	require.NoError(t, err)

	t.Cleanup(func() {
		f.boards.AssertExpectations(t)
		f.columns.AssertExpectations(t)
		f.cards.AssertExpectations(t)
		assert.NoError(t, txMock.ExpectationsWereMet())
	})
	return f
}

func TestColumnService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	boardID := uuid.New()
	x, y := uuid.New(), uuid.New()

	t.Run("reorder publishes the new order", func(t *testing.T) {
		emitter := &recordingEmitter{}
		f := newEmittingFixture(t, emitter)
		swap := []domain.ColumnPosition{{ID: x, Position: 1}, {ID: y, Position: 0}}

		f.tx.ExpectBegin()
		f.boards.On("Exists", mock.Anything, boardID).Return(true, nil)
		f.columns.On("ListIDsByBoard", mock.Anything, boardID).Return([]uuid.UUID{x, y}, nil)
		f.columns.On("BulkUpdatePositions", mock.Anything, boardID, swap).Return(int64(2), nil)
		f.columns.On("ListByBoard", mock.Anything, boardID).Return(columnsAt(boardID, y, x), nil)
		f.tx.ExpectCommit()

		_, err := f.svc.ReorderColumns(ctx, boardID, swap)
		require.NoError(t, err)

		require.Len(t, emitter.events, 1)
		event := emitter.events[0]
		assert.Equal(t, events.TypeColumnsReordered, event.Type)
		assert.Equal(t, boardID, event.BoardID)

		var payload events.ColumnsReorderedPayload
		require.NoError(t, event.UnmarshalPayload(&payload))
		assert.Equal(t, []uuid.UUID{y, x}, payload.ColumnIDs)
	})

	t.Run("rejected reorder publishes nothing", func(t *testing.T) {
		emitter := &recordingEmitter{}
		f := newEmittingFixture(t, emitter)

		f.tx.ExpectBegin()
		f.boards.On("Exists", mock.Anything, boardID).Return(true, nil)
		f.columns.On("ListIDsByBoard", mock.Anything, boardID).Return([]uuid.UUID{x, y}, nil)
		f.tx.ExpectRollback()

		_, err := f.svc.ReorderColumns(ctx, boardID, []domain.ColumnPosition{{ID: x, Position: 0}})
		assert.ErrorIs(t, err, domain.ErrCountMismatch)
		assert.Empty(t, emitter.events)
	})

	t.Run("delete publishes counts even when a handler fails", func(t *testing.T) {
		emitter := &recordingEmitter{err: errors.New("audit sink down")}
		f := newEmittingFixture(t, emitter)
		column := &domain.Column{ID: x, BoardID: boardID, Position: 0}

		f.tx.ExpectBegin()
		f.columns.On("GetByID", mock.Anything, x).Return(column, nil)
		f.boards.On("Lock", mock.Anything, boardID).Return(nil)
		f.columns.On("LockByBoard", mock.Anything, boardID).Return(nil)
		f.cards.On("DeleteByColumn", mock.Anything, x).Return(int64(4), nil)
		f.columns.On("Delete", mock.Anything, x).Return(nil)
		f.columns.On("Resequence", mock.Anything, boardID).Return(int64(1), nil)
		f.tx.ExpectCommit()

		require.NoError(t, f.svc.DeleteColumn(ctx, x))

		require.Len(t, emitter.events, 1)
		var payload events.ColumnDeletedPayload
		require.NoError(t, emitter.events[0].UnmarshalPayload(&payload))
		assert.Equal(t, events.ColumnDeletedPayload{ColumnID: x, CardsDeleted: 4, ColumnsMoved: 1}, payload)
	})

	t.Run("failed delete publishes nothing", func(t *testing.T) {
		emitter := &recordingEmitter{}
		f := newEmittingFixture(t, emitter)

		f.tx.ExpectBegin()
		f.columns.On("GetByID", mock.Anything, x).Return(nil, store.ErrColumnNotFound)
		f.tx.ExpectRollback()

		assert.ErrorIs(t, f.svc.DeleteColumn(ctx, x), store.ErrColumnNotFound)
		assert.Empty(t, emitter.events)
	})
}
