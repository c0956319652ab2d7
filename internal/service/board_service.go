package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
)

// BoardService provides board creation and lookup.
type BoardService interface {
	CreateBoard(ctx context.Context, title, description string) (*domain.Board, error)
	GetBoard(ctx context.Context, id uuid.UUID) (*domain.Board, error)

	// ListBoards returns every board, newest first.
	ListBoards(ctx context.Context) ([]*domain.Board, error)
}

type boardServiceImpl struct {
	boardRepo BoardRepository
	logger    *slog.Logger
}

// NewBoardService creates a new BoardService
func NewBoardService(boardRepo BoardRepository, logger *slog.Logger) (BoardService, error) {
	if boardRepo == nil {
		return nil, domain.NewValidationError("boardRepo", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &boardServiceImpl{
		boardRepo: boardRepo,
		logger:    logger.With(slog.String("component", "board_service")),
	}, nil
}

func (s *boardServiceImpl) wrap(operation, message string, err error) error {
	if err == nil || isExpected(err) {
		return err
	}
	return &BoardServiceError{Operation: operation, Message: message, Err: err}
}

// CreateBoard implements BoardService.CreateBoard
func (s *boardServiceImpl) CreateBoard(ctx context.Context, title, description string) (*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	board, err := domain.NewBoard(title, description)
	if err != nil {
		return nil, err
	}

	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, s.wrap("create", "failed to create board", err)
	}

	log.Info("board created", slog.String("board_id", board.ID.String()))
	return board, nil
}

// GetBoard implements BoardService.GetBoard
func (s *boardServiceImpl) GetBoard(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	board, err := s.boardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrap("get", "failed to get board", err)
	}
	return board, nil
}

// ListBoards implements BoardService.ListBoards
func (s *boardServiceImpl) ListBoards(ctx context.Context) ([]*domain.Board, error) {
	boards, err := s.boardRepo.List(ctx)
	if err != nil {
		return nil, s.wrap("list", "failed to list boards", err)
	}
	if boards == nil {
		boards = []*domain.Board{}
	}
	return boards, nil
}
