package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = fmt.Errorf("%w: card ID cannot be empty", ErrValidation)

	// ErrCardColumnIDEmpty is returned when a card has no owning column.
	ErrCardColumnIDEmpty = fmt.Errorf("%w: card column ID cannot be empty", ErrValidation)

	// ErrCardTitleEmpty is returned when a card title is blank.
	ErrCardTitleEmpty = fmt.Errorf("%w: card title cannot be empty", ErrValidation)
)

// Card is a task that lives in exactly one column. Cards are removed
// together with their column and are never reordered by the column
// ordering engine.
type Card struct {
	ID          uuid.UUID `json:"id"`
	ColumnID    uuid.UUID `json:"column_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCard creates a new Card in the given column.
// It generates a new UUID for the card ID and sets the creation/update timestamps.
func NewCard(columnID uuid.UUID, title, description string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:          uuid.New(),
		ColumnID:    columnID,
		Title:       strings.TrimSpace(title),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}
	if c.ColumnID == uuid.Nil {
		return ErrCardColumnIDEmpty
	}
	if strings.TrimSpace(c.Title) == "" {
		return ErrCardTitleEmpty
	}
	return nil
}
