package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
)

// CreateBoardRequest defines the payload for creating a board.
type CreateBoardRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description"`
}

// CreateCardRequest defines the payload for appending a card to a column.
type CreateCardRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description"`
}

// CreateColumnRequest defines the payload for creating a column.
type CreateColumnRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

// ColumnPositionRequest assigns one column its new position.
// Position is a pointer so a missing value is distinguishable from 0.
type ColumnPositionRequest struct {
	ID       uuid.UUID `json:"id"       validate:"required"`
	Position *int      `json:"position" validate:"required"`
}

// ReorderColumnsRequest defines the payload for reordering a board's columns.
// It must name every column of the board exactly once.
type ReorderColumnsRequest struct {
	Columns []ColumnPositionRequest `json:"columns" validate:"required,dive"`
}

// ColumnResponse is the JSON representation of a column.
type ColumnResponse struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"board_id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardResponse is the JSON representation of a board.
type BoardResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BoardListResponse wraps a list of boards, newest first.
type BoardListResponse struct {
	Boards []BoardResponse `json:"boards"`
}

// CardResponse is the JSON representation of a card.
type CardResponse struct {
	ID          uuid.UUID `json:"id"`
	ColumnID    uuid.UUID `json:"column_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CardListResponse wraps the cards of a column in position order.
type CardListResponse struct {
	ColumnID uuid.UUID      `json:"column_id"`
	Cards    []CardResponse `json:"cards"`
}

// ColumnListResponse wraps an ordered list of columns.
type ColumnListResponse struct {
	BoardID uuid.UUID        `json:"board_id"`
	Columns []ColumnResponse `json:"columns"`
}

// toCandidate converts the request into the domain reorder candidate.
func (r ReorderColumnsRequest) toCandidate() []domain.ColumnPosition {
	candidate := make([]domain.ColumnPosition, len(r.Columns))
	for i, c := range r.Columns {
		candidate[i] = domain.ColumnPosition{ID: c.ID, Position: *c.Position}
	}
	return candidate
}

// columnToResponse converts a domain.Column to a ColumnResponse
func columnToResponse(column *domain.Column) ColumnResponse {
	return ColumnResponse{
		ID:        column.ID,
		BoardID:   column.BoardID,
		Title:     column.Title,
		Position:  column.Position,
		CreatedAt: column.CreatedAt,
		UpdatedAt: column.UpdatedAt,
	}
}

// columnsToResponse converts an ordered column list to a ColumnListResponse
func columnsToResponse(boardID uuid.UUID, columns []*domain.Column) ColumnListResponse {
	out := ColumnListResponse{
		BoardID: boardID,
		Columns: make([]ColumnResponse, len(columns)),
	}
	for i, c := range columns {
		out.Columns[i] = columnToResponse(c)
	}
	return out
}

func boardToResponse(board *domain.Board) BoardResponse {
	return BoardResponse{
		ID:          board.ID,
		Title:       board.Title,
		Description: board.Description,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
}

func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:          card.ID,
		ColumnID:    card.ColumnID,
		Title:       card.Title,
		Description: card.Description,
		Position:    card.Position,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}
