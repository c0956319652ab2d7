package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// CardService provides card creation and listing within a column.
type CardService interface {
	// CreateCard appends a card to the end of a column.
	CreateCard(ctx context.Context, columnID uuid.UUID, title, description string) (*domain.Card, error)

	// ListCards returns the cards of a column in position order.
	ListCards(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error)
}

type cardServiceImpl struct {
	boardRepo  BoardRepository
	columnRepo ColumnRepository
	cardRepo   CardRepository
	logger     *slog.Logger
}

// NewCardService creates a new CardService
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	boardRepo BoardRepository,
	columnRepo ColumnRepository,
	cardRepo CardRepository,
	logger *slog.Logger,
) (CardService, error) {
	if boardRepo == nil {
		return nil, domain.NewValidationError("boardRepo", "cannot be nil", domain.ErrValidation)
	}
	if columnRepo == nil {
		return nil, domain.NewValidationError("columnRepo", "cannot be nil", domain.ErrValidation)
	}
	if cardRepo == nil {
		return nil, domain.NewValidationError("cardRepo", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &cardServiceImpl{
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
		cardRepo:   cardRepo,
		logger:     logger.With(slog.String("component", "card_service")),
	}, nil
}

func (s *cardServiceImpl) wrap(operation, message string, err error) error {
	if err == nil || isExpected(err) {
		return err
	}
	return &CardServiceError{Operation: operation, Message: message, Err: err}
}

// CreateCard implements CardService.CreateCard
//
// The column's board is locked like a column delete locks it, so a card is
// either inserted before the delete collects the column's cards or finds the
// column gone.
func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	columnID uuid.UUID,
	title, description string,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(columnID, title, description)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.columnRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		column, err := s.columnRepo.WithTx(tx).GetByID(ctx, columnID)
		if err != nil {
			return err
		}
		if err := s.boardRepo.WithTx(tx).Lock(ctx, column.BoardID); err != nil {
			return err
		}

		err = s.cardRepo.WithTx(tx).Create(ctx, card)
		if errors.Is(err, store.ErrInvalidEntity) {
			// the column was deleted while the board lock was awaited
			return store.ErrColumnNotFound
		}
		return err
	})
	if err != nil {
		return nil, s.wrap("create", "failed to create card", err)
	}

	log.Info("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("column_id", columnID.String()),
		slog.Int("position", card.Position))
	return card, nil
}

// ListCards implements CardService.ListCards
func (s *cardServiceImpl) ListCards(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error) {
	if _, err := s.columnRepo.GetByID(ctx, columnID); err != nil {
		return nil, s.wrap("list", "failed to get column", err)
	}

	cards, err := s.cardRepo.ListByColumn(ctx, columnID)
	if err != nil {
		return nil, s.wrap("list", "failed to list cards", err)
	}
	if cards == nil {
		cards = []*domain.Card{}
	}
	return cards, nil
}
