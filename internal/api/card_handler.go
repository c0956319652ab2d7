package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// Routes mounts the card endpoints on r.
func (h *CardHandler) Routes(r chi.Router) {
	r.Get("/columns/{id}/cards", h.ListCards)
	r.Post("/columns/{id}/cards", h.CreateCard)
}

// ListCards handles GET /api/columns/{id}/cards requests
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	columnID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), columnID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cards")
		return
	}

	resp := CardListResponse{ColumnID: columnID, Cards: make([]CardResponse, len(cards))}
	for i, c := range cards {
		resp.Cards[i] = cardToResponse(c)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateCard handles POST /api/columns/{id}/cards requests.
// The card is appended after the column's existing cards.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	columnID, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err,
			shared.WithElevatedLogLevel())
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), columnID, req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}

	log.Debug("card created",
		slog.String("column_id", columnID.String()),
		slog.String("card_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}
