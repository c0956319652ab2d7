package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxColumnTitleLength bounds the length of a column title.
const MaxColumnTitleLength = 255

// Column-specific validation errors
var (
	// ErrColumnIDEmpty is returned when a column ID is empty or nil.
	ErrColumnIDEmpty = fmt.Errorf("%w: column ID cannot be empty", ErrValidation)

	// ErrColumnBoardIDEmpty is returned when a column has no owning board.
	ErrColumnBoardIDEmpty = fmt.Errorf("%w: column board ID cannot be empty", ErrValidation)

	// ErrColumnTitleEmpty is returned when a column title is blank.
	ErrColumnTitleEmpty = fmt.Errorf("%w: column title cannot be empty", ErrValidation)

	// ErrColumnTitleTooLong is returned when a column title exceeds MaxColumnTitleLength.
	ErrColumnTitleTooLong = fmt.Errorf("%w: column title is too long", ErrValidation)

	// ErrColumnPositionNegative is returned when a column position is below zero.
	ErrColumnPositionNegative = fmt.Errorf("%w: column position cannot be negative", ErrValidation)
)

// Column is an ordered member of a board. Within one board the positions of
// all columns always form the dense run 0..n-1.
type Column struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"board_id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewColumn creates a new Column for the given board. The position is
// assigned by the store when the column is persisted.
func NewColumn(boardID uuid.UUID, title string) (*Column, error) {
	now := time.Now().UTC()
	column := &Column{
		ID:        uuid.New(),
		BoardID:   boardID,
		Title:     strings.TrimSpace(title),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := column.Validate(); err != nil {
		return nil, err
	}

	return column, nil
}

// Validate checks if the Column has valid data.
func (c *Column) Validate() error {
	if c.ID == uuid.Nil {
		return ErrColumnIDEmpty
	}
	if c.BoardID == uuid.Nil {
		return ErrColumnBoardIDEmpty
	}
	if strings.TrimSpace(c.Title) == "" {
		return ErrColumnTitleEmpty
	}
	if len(c.Title) > MaxColumnTitleLength {
		return ErrColumnTitleTooLong
	}
	if c.Position < 0 {
		return ErrColumnPositionNegative
	}
	return nil
}
