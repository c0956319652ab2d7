package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// ErrInvalidOrdering is the parent of every permutation validation failure.
// It wraps ErrValidation so generic validation handling also applies.
var ErrInvalidOrdering = fmt.Errorf("%w: invalid column ordering", ErrValidation)

// OrderingErrorKind identifies which permutation rule a candidate ordering broke.
type OrderingErrorKind int

// Ordering error kinds, listed in the order the rules are checked.
const (
	EmptyPayload OrderingErrorKind = iota + 1
	NonNegativeViolation
	CountMismatch
	SetMismatch
	DuplicatePosition
	NonContiguousRange
)

// String returns the name of the violated rule.
func (k OrderingErrorKind) String() string {
	switch k {
	case EmptyPayload:
		return "EmptyPayload"
	case NonNegativeViolation:
		return "NonNegativeViolation"
	case CountMismatch:
		return "CountMismatch"
	case SetMismatch:
		return "SetMismatch"
	case DuplicatePosition:
		return "DuplicatePosition"
	case NonContiguousRange:
		return "NonContiguousRange"
	default:
		return fmt.Sprintf("OrderingErrorKind(%d)", int(k))
	}
}

// Sentinel errors, one per kind. OrderingError unwraps to the matching one,
// so errors.Is(err, ErrSetMismatch) works on any returned failure.
var (
	ErrEmptyPayload       = fmt.Errorf("%w: at least one column is required", ErrInvalidOrdering)
	ErrNegativePosition   = fmt.Errorf("%w: positions must be non-negative", ErrInvalidOrdering)
	ErrCountMismatch      = fmt.Errorf("%w: payload must include every column of the board", ErrInvalidOrdering)
	ErrSetMismatch        = fmt.Errorf("%w: payload columns do not match board columns", ErrInvalidOrdering)
	ErrDuplicatePosition  = fmt.Errorf("%w: positions must be unique", ErrInvalidOrdering)
	ErrNonContiguousRange = fmt.Errorf("%w: positions must form a contiguous range starting at 0", ErrInvalidOrdering)
)

var orderingSentinels = map[OrderingErrorKind]error{
	EmptyPayload:         ErrEmptyPayload,
	NonNegativeViolation: ErrNegativePosition,
	CountMismatch:        ErrCountMismatch,
	SetMismatch:          ErrSetMismatch,
	DuplicatePosition:    ErrDuplicatePosition,
	NonContiguousRange:   ErrNonContiguousRange,
}

// OrderingError reports the first permutation rule a candidate ordering broke.
type OrderingError struct {
	Kind   OrderingErrorKind
	Detail string
}

// Error implements the error interface for OrderingError.
func (e *OrderingError) Error() string {
	sentinel := e.Unwrap()
	if e.Detail == "" {
		return sentinel.Error()
	}
	return fmt.Sprintf("%v (%s)", sentinel, e.Detail)
}

// Unwrap returns the sentinel error for the kind.
func (e *OrderingError) Unwrap() error {
	if sentinel, ok := orderingSentinels[e.Kind]; ok {
		return sentinel
	}
	return ErrInvalidOrdering
}

func newOrderingError(kind OrderingErrorKind, format string, args ...any) *OrderingError {
	return &OrderingError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// OrderingErrorKindOf returns the kind of the ordering failure wrapped in err.
func OrderingErrorKindOf(err error) (OrderingErrorKind, bool) {
	var oe *OrderingError
	if errors.As(err, &oe) {
		return oe.Kind, true
	}
	return 0, false
}

// ColumnPosition assigns a position to a column inside a reorder request.
type ColumnPosition struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

// ValidatePermutation decides whether candidate is a legal total reordering
// of the columns in current. Rules are checked in a fixed order and the
// first violation is returned as an *OrderingError. It performs no I/O.
func ValidatePermutation(current []uuid.UUID, candidate []ColumnPosition) error {
	if len(current) == 0 && len(candidate) == 0 {
		return nil
	}

	if len(candidate) == 0 {
		return newOrderingError(EmptyPayload, "board has %d columns", len(current))
	}

	for _, c := range candidate {
		if c.Position < 0 {
			return newOrderingError(NonNegativeViolation, "column %s has position %d", c.ID, c.Position)
		}
	}

	if len(candidate) != len(current) {
		return newOrderingError(CountMismatch, "expected %d columns, got %d", len(current), len(candidate))
	}

	// Counts are equal, so a duplicated candidate ID necessarily leaves some
	// current ID uncovered and is reported as a set mismatch.
	remaining := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		remaining[id] = struct{}{}
	}
	for _, c := range candidate {
		if _, ok := remaining[c.ID]; !ok {
			return newOrderingError(SetMismatch, "column %s is not a member of the board or is repeated", c.ID)
		}
		delete(remaining, c.ID)
	}

	positions := make([]int, len(candidate))
	seen := make(map[int]struct{}, len(candidate))
	for i, c := range candidate {
		if _, dup := seen[c.Position]; dup {
			return newOrderingError(DuplicatePosition, "position %d is assigned more than once", c.Position)
		}
		seen[c.Position] = struct{}{}
		positions[i] = c.Position
	}

	sort.Ints(positions)
	for i, p := range positions {
		if p != i {
			return newOrderingError(NonContiguousRange, "expected position %d, found %d", i, p)
		}
	}

	return nil
}
