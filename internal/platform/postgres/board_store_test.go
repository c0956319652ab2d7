package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/postgres"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardStore_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	boards := postgres.NewPostgresBoardStore(db, nil)
	id := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := boards.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = boards.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBoardStore_Lock(t *testing.T) {
	id := uuid.New()

	t.Run("existing board", func(t *testing.T) {
		db, mock := newMockDB(t)
		boards := postgres.NewPostgresBoardStore(db, nil)

		mock.ExpectQuery("FOR UPDATE").
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

		assert.NoError(t, boards.Lock(context.Background(), id))
	})

	t.Run("missing board", func(t *testing.T) {
		db, mock := newMockDB(t)
		boards := postgres.NewPostgresBoardStore(db, nil)

		mock.ExpectQuery("FOR UPDATE").WillReturnError(sql.ErrNoRows)

		assert.ErrorIs(t, boards.Lock(context.Background(), id), store.ErrBoardNotFound)
	})
}

func TestBoardStore_Create(t *testing.T) {
	db, mock := newMockDB(t)
	boards := postgres.NewPostgresBoardStore(db, nil)

	board, err := domain.NewBoard("Roadmap", "")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO boards").
		WithArgs(board.ID.String(), "Roadmap", "", board.CreatedAt, board.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, boards.Create(context.Background(), board))

	err = boards.Create(context.Background(), &domain.Board{ID: uuid.New()})
	assert.True(t, errors.Is(err, domain.ErrBoardTitleEmpty))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardStore_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	boards := postgres.NewPostgresBoardStore(db, nil)

	mock.ExpectQuery("FROM boards").WillReturnError(sql.ErrNoRows)

	_, err := boards.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrBoardNotFound)
}
