package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/store"
)

// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes

// ColumnServiceError is a custom error type for column service errors.
type ColumnServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ColumnServiceError.
func (e *ColumnServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("column service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("column service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ColumnServiceError) Unwrap() error {
	return e.Err
}

// NewColumnServiceError creates a new ColumnServiceError.
func NewColumnServiceError(operation, message string, err error) *ColumnServiceError {
	return &ColumnServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// isExpected reports whether err is one of the conditions callers are meant
// to handle themselves: a missing entity, a rejected input, or a lost race.
func isExpected(err error) bool {
	return errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		errors.Is(err, store.ErrConcurrentModification)
}

// wrapUnexpected passes expected errors through unchanged and wraps the rest.
func wrapUnexpected(operation, message string, err error) error {
	if err == nil || isExpected(err) {
		return err
	}
	return NewColumnServiceError(operation, message, err)
}

// BoardServiceError is a custom error type for board service errors.
type BoardServiceError struct {
	Operation string
	Message   string
	Err       error
}

func (e *BoardServiceError) Error() string {
	return fmt.Sprintf("board service %s failed: %s: %v", e.Operation, e.Message, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *BoardServiceError) Unwrap() error {
	return e.Err
}

// CardServiceError is a custom error type for card service errors.
type CardServiceError struct {
	Operation string
	Message   string
	Err       error
}

func (e *CardServiceError) Error() string {
	return fmt.Sprintf("card service %s failed: %s: %v", e.Operation, e.Message, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CardServiceError) Unwrap() error {
	return e.Err
}
