package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service"
)

// ColumnHandler handles column-related HTTP requests
type ColumnHandler struct {
	columnService service.ColumnService
	logger        *slog.Logger
}

// NewColumnHandler creates a new ColumnHandler
func NewColumnHandler(columnService service.ColumnService, logger *slog.Logger) *ColumnHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ColumnHandler{
		columnService: columnService,
		logger:        logger.With(slog.String("component", "column_handler")),
	}
}

// Routes mounts the column endpoints on r.
func (h *ColumnHandler) Routes(r chi.Router) {
	r.Route("/boards/{boardID}/columns", func(r chi.Router) {
		r.Get("/", h.ListColumns)
		r.Post("/", h.CreateColumn)
		r.Patch("/order", h.ReorderColumns)
	})
	r.Delete("/columns/{id}", h.DeleteColumn)
}

// ListColumns handles GET /api/boards/{boardID}/columns requests
func (h *ColumnHandler) ListColumns(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	boardID, ok := handlePathUUID(w, r, "boardID", log)
	if !ok {
		return
	}

	columns, err := h.columnService.ListColumns(r.Context(), boardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list columns")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, columnsToResponse(boardID, columns))
}

// CreateColumn handles POST /api/boards/{boardID}/columns requests
func (h *ColumnHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	boardID, ok := handlePathUUID(w, r, "boardID", log)
	if !ok {
		return
	}

	var req CreateColumnRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err,
			shared.WithElevatedLogLevel())
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	column, err := h.columnService.CreateColumn(r.Context(), boardID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create column")
		return
	}

	log.Debug("column created",
		slog.String("board_id", boardID.String()),
		slog.String("column_id", column.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, columnToResponse(column))
}

// ReorderColumns handles PATCH /api/boards/{boardID}/columns/order requests.
// The body must assign every column of the board a distinct position in 0..n-1.
func (h *ColumnHandler) ReorderColumns(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	boardID, ok := handlePathUUID(w, r, "boardID", log)
	if !ok {
		return
	}

	var req ReorderColumnsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err,
			shared.WithElevatedLogLevel())
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	columns, err := h.columnService.ReorderColumns(r.Context(), boardID, req.toCandidate())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reorder columns")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, columnsToResponse(boardID, columns))
}

// DeleteColumn handles DELETE /api/columns/{id} requests.
// The column's cards are deleted with it.
func (h *ColumnHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	columnID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.columnService.DeleteColumn(r.Context(), columnID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete column")
		return
	}

	shared.RespondNoContent(w, r)
}
