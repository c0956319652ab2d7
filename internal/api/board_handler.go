package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service"
)

// BoardHandler handles board-related HTTP requests
type BoardHandler struct {
	boardService service.BoardService
	logger       *slog.Logger
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardService service.BoardService, logger *slog.Logger) *BoardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardHandler{
		boardService: boardService,
		logger:       logger.With(slog.String("component", "board_handler")),
	}
}

// Routes mounts the board endpoints on r.
func (h *BoardHandler) Routes(r chi.Router) {
	r.Get("/boards", h.ListBoards)
	r.Post("/boards", h.CreateBoard)
	r.Get("/boards/{boardID}", h.GetBoard)
}

// ListBoards handles GET /api/boards requests
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boardService.ListBoards(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list boards")
		return
	}

	resp := BoardListResponse{Boards: make([]BoardResponse, len(boards))}
	for i, b := range boards {
		resp.Boards[i] = boardToResponse(b)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateBoard handles POST /api/boards requests
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateBoardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err,
			shared.WithElevatedLogLevel())
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	board, err := h.boardService.CreateBoard(r.Context(), req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create board")
		return
	}

	log.Debug("board created", slog.String("board_id", board.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, boardToResponse(board))
}

// GetBoard handles GET /api/boards/{boardID} requests
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	boardID, ok := handlePathUUID(w, r, "boardID", log)
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(r.Context(), boardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get board")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, boardToResponse(board))
}
