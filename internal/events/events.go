package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Board event types.
const (
	TypeColumnCreated    = "column.created"
	TypeColumnsReordered = "columns.reordered"
	TypeColumnDeleted    = "column.deleted"
)

// BoardEvent records a committed change to a board's columns.
type BoardEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// BoardID is the board whose columns changed
	BoardID uuid.UUID `json:"board_id"`

	// Payload contains type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// ColumnCreatedPayload is the payload of a column.created event.
type ColumnCreatedPayload struct {
	ColumnID uuid.UUID `json:"column_id"`
	Position int       `json:"position"`
}

// ColumnsReorderedPayload is the payload of a columns.reordered event.
// ColumnIDs is the board's columns in their new order.
type ColumnsReorderedPayload struct {
	ColumnIDs []uuid.UUID `json:"column_ids"`
}

// ColumnDeletedPayload is the payload of a column.deleted event.
type ColumnDeletedPayload struct {
	ColumnID     uuid.UUID `json:"column_id"`
	CardsDeleted int64     `json:"cards_deleted"`
	ColumnsMoved int64     `json:"columns_moved"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *BoardEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewBoardEvent creates a new BoardEvent with the specified type and payload.
func NewBoardEvent(eventType string, boardID uuid.UUID, payload interface{}) (*BoardEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &BoardEvent{
		ID:        uuid.New(),
		Type:      eventType,
		BoardID:   boardID,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *BoardEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *BoardEvent) error
}
