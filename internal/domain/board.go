package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Board-specific validation errors
var (
	// ErrBoardIDEmpty is returned when a board ID is empty or nil.
	ErrBoardIDEmpty = fmt.Errorf("%w: board ID cannot be empty", ErrValidation)

	// ErrBoardTitleEmpty is returned when a board title is blank.
	ErrBoardTitleEmpty = fmt.Errorf("%w: board title cannot be empty", ErrValidation)
)

// Board groups an ordered set of columns. It is the scope inside which
// column positions are unique and dense.
type Board struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBoard creates a new Board with a generated ID and fresh timestamps.
func NewBoard(title, description string) (*Board, error) {
	now := time.Now().UTC()
	board := &Board{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := board.Validate(); err != nil {
		return nil, err
	}

	return board, nil
}

// Validate checks if the Board has valid data.
func (b *Board) Validate() error {
	if b.ID == uuid.Nil {
		return ErrBoardIDEmpty
	}
	if strings.TrimSpace(b.Title) == "" {
		return ErrBoardTitleEmpty
	}
	return nil
}
