package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockColumnService mocks service.ColumnService
type mockColumnService struct {
	mock.Mock
}

func (m *mockColumnService) CreateColumn(
	ctx context.Context,
	boardID uuid.UUID,
	title string,
) (*domain.Column, error) {
	args := m.Called(ctx, boardID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Column), args.Error(1)
}

func (m *mockColumnService) ListColumns(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Column), args.Error(1)
}

func (m *mockColumnService) ReorderColumns(
	ctx context.Context,
	boardID uuid.UUID,
	candidate []domain.ColumnPosition,
) ([]*domain.Column, error) {
	args := m.Called(ctx, boardID, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Column), args.Error(1)
}

func (m *mockColumnService) DeleteColumn(ctx context.Context, columnID uuid.UUID) error {
	args := m.Called(ctx, columnID)
	return args.Error(0)
}

func newTestRouter(svc *mockColumnService) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", NewColumnHandler(svc, nil).Routes)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestReorderColumnsHandler(t *testing.T) {
	boardID := uuid.New()
	x, y := uuid.New(), uuid.New()
	path := "/api/boards/" + boardID.String() + "/columns/order"
	body := `{"columns":[{"id":"` + x.String() + `","position":1},{"id":"` + y.String() + `","position":0}]}`
	candidate := []domain.ColumnPosition{{ID: x, Position: 1}, {ID: y, Position: 0}}

	t.Run("returns reordered columns", func(t *testing.T) {
		svc := &mockColumnService{}
		svc.On("ReorderColumns", mock.Anything, boardID, candidate).Return([]*domain.Column{
			{ID: y, BoardID: boardID, Title: "Y", Position: 0},
			{ID: x, BoardID: boardID, Title: "X", Position: 1},
		}, nil)

		rec := doRequest(t, newTestRouter(svc), http.MethodPatch, path, body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ColumnListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Columns, 2)
		assert.Equal(t, y, resp.Columns[0].ID)
		assert.Equal(t, 1, resp.Columns[1].Position)
		svc.AssertExpectations(t)
	})

	errorCases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "unknown board",
			err:        store.ErrBoardNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "Board not found",
		},
		{
			name:       "invalid permutation",
			err:        &domain.OrderingError{Kind: domain.DuplicatePosition, Detail: "position 0"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid column ordering: DuplicatePosition",
		},
		{
			name:       "concurrent modification",
			err:        store.ErrConcurrentModification,
			wantStatus: http.StatusConflict,
			wantMsg:    "The board was modified concurrently; reload and retry",
		},
		{
			name:       "internal failure hides details",
			err:        errors.New("dial tcp 10.0.0.7:5432: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Failed to reorder columns",
		},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockColumnService{}
			svc.On("ReorderColumns", mock.Anything, boardID, candidate).Return(nil, tc.err)

			rec := doRequest(t, newTestRouter(svc), http.MethodPatch, path, body)
			assert.Equal(t, tc.wantStatus, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tc.wantMsg, resp.Error)
			assert.NotContains(t, resp.Error, "10.0.0.7")
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		svc := &mockColumnService{}
		rec := doRequest(t, newTestRouter(svc), http.MethodPatch, path, `{"columns":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ReorderColumns", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing position", func(t *testing.T) {
		svc := &mockColumnService{}
		rec := doRequest(t, newTestRouter(svc), http.MethodPatch, path,
			`{"columns":[{"id":"`+x.String()+`"}]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid Position: required field", decodeError(t, rec).Error)
	})

	t.Run("missing columns field", func(t *testing.T) {
		svc := &mockColumnService{}
		rec := doRequest(t, newTestRouter(svc), http.MethodPatch, path, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty list is passed through", func(t *testing.T) {
		svc := &mockColumnService{}
		svc.On("ReorderColumns", mock.Anything, boardID, []domain.ColumnPosition{}).
			Return([]*domain.Column{}, nil)

		rec := doRequest(t, newTestRouter(svc), http.MethodPatch, path, `{"columns":[]}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"board_id":"`+boardID.String()+`","columns":[]}`, rec.Body.String())
	})

	t.Run("negative position reaches the validator", func(t *testing.T) {
		svc := &mockColumnService{}
		neg := []domain.ColumnPosition{{ID: x, Position: -1}}
		svc.On("ReorderColumns", mock.Anything, boardID, neg).
			Return(nil, &domain.OrderingError{Kind: domain.NonNegativeViolation})

		rec := doRequest(t, newTestRouter(svc), http.MethodPatch, path,
			`{"columns":[{"id":"`+x.String()+`","position":-1}]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid column ordering: NonNegativeViolation", decodeError(t, rec).Error)
	})

	t.Run("invalid board id", func(t *testing.T) {
		svc := &mockColumnService{}
		rec := doRequest(t, newTestRouter(svc), http.MethodPatch, "/api/boards/not-a-uuid/columns/order", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid ID format", decodeError(t, rec).Error)
	})
}

func TestDeleteColumnHandler(t *testing.T) {
	columnID := uuid.New()
	path := "/api/columns/" + columnID.String()

	t.Run("no content on success", func(t *testing.T) {
		svc := &mockColumnService{}
		svc.On("DeleteColumn", mock.Anything, columnID).Return(nil)

		rec := doRequest(t, newTestRouter(svc), http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("unknown column", func(t *testing.T) {
		svc := &mockColumnService{}
		svc.On("DeleteColumn", mock.Anything, columnID).Return(store.ErrColumnNotFound)

		rec := doRequest(t, newTestRouter(svc), http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Column not found", decodeError(t, rec).Error)
	})
}

func TestCreateColumnHandler(t *testing.T) {
	boardID := uuid.New()
	path := "/api/boards/" + boardID.String() + "/columns"

	t.Run("created", func(t *testing.T) {
		svc := &mockColumnService{}
		created := &domain.Column{ID: uuid.New(), BoardID: boardID, Title: "Review", Position: 3}
		svc.On("CreateColumn", mock.Anything, boardID, "Review").Return(created, nil)

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, path, `{"title":"Review"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp ColumnResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, created.ID, resp.ID)
		assert.Equal(t, 3, resp.Position)
	})

	t.Run("title required", func(t *testing.T) {
		svc := &mockColumnService{}
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, path, `{"title":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid Title: required field", decodeError(t, rec).Error)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		svc := &mockColumnService{}
		rec := doRequest(t, newTestRouter(svc), http.MethodPost, path, `{"title":"x","position":0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListColumnsHandler(t *testing.T) {
	boardID := uuid.New()
	svc := &mockColumnService{}
	svc.On("ListColumns", mock.Anything, boardID).Return([]*domain.Column{
		{ID: uuid.New(), BoardID: boardID, Title: "Todo", Position: 0},
	}, nil)

	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/api/boards/"+boardID.String()+"/columns", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ColumnListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, boardID, resp.BoardID)
	require.Len(t, resp.Columns, 1)
	assert.Equal(t, "Todo", resp.Columns[0].Title)
}
