package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// CardService defines the interface for card business logic
type CardService interface {
	ListCards(ctx context.Context, board string) ([]*domain.Card, error)
	CreateCard(ctx context.Context, req *dto.CreateCardRequest) (*domain.Card, error)
	// UpdateCard returns (nil, nil) when no card has the id.
	UpdateCard(ctx context.Context, id int64, req *dto.UpdateCardRequest) (*domain.Card, error)
	DeleteCard(ctx context.Context, id int64) error
	ListBoards(ctx context.Context) ([]domain.BoardSummary, error)
}

// cardServiceImpl is the implementation of CardService
type cardServiceImpl struct {
	repo    repository.CardRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCardService creates a new instance of CardService
func NewCardService(repo repository.CardRepository, m *metrics.Metrics, logger *zap.Logger) CardService {
	return &cardServiceImpl{
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

// ListCards returns the cards of a board ordered by position
func (s *cardServiceImpl) ListCards(ctx context.Context, board string) ([]*domain.Card, error) {
	cards, err := s.repo.FindByBoard(ctx, board)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch cards", err.Error())
	}
	return cards, nil
}

// CreateCard appends a card to the end of its column
func (s *cardServiceImpl) CreateCard(ctx context.Context, req *dto.CreateCardRequest) (*domain.Card, error) {
	if strings.TrimSpace(req.Board) == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Board is required", "")
	}
	if strings.TrimSpace(req.ColumnName) == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Column name is required", "")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Title is required", "")
	}

	card := &domain.Card{
		Board:       req.Board,
		ColumnName:  req.ColumnName,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priorityOrDefault(req.Priority),
	}

	err := s.repo.Transaction(ctx, func(repo repository.CardRepository) error {
		maxPos, err := repo.MaxPosition(ctx, card.Board, card.ColumnName)
		if err != nil {
			return err
		}
		card.Position = maxPos + 1
		return repo.Create(ctx, card)
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create card", err.Error())
	}

	s.metrics.IncrementCardCreated()
	s.logger.Debug("Card created",
		zap.Int64("card_id", card.ID),
		zap.String("board", card.Board),
		zap.String("column", card.ColumnName),
		zap.Int("position", card.Position))

	return card, nil
}

// UpdateCard replaces the mutable fields of a card. When another card in
// the target column already holds the target position, that card and every
// card after it move down by one so the moved card lands exactly where
// asked. Positions are never compacted.
func (s *cardServiceImpl) UpdateCard(ctx context.Context, id int64, req *dto.UpdateCardRequest) (*domain.Card, error) {
	if strings.TrimSpace(req.ColumnName) == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Column name is required", "")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Title is required", "")
	}

	var (
		updated *domain.Card
		moved   bool
		shifted int64
	)
	err := s.repo.Transaction(ctx, func(repo repository.CardRepository) error {
		card, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		position := card.Position
		if req.Position != nil {
			position = *req.Position
		}

		taken, err := repo.PositionTaken(ctx, card.Board, req.ColumnName, position, card.ID)
		if err != nil {
			return err
		}
		if taken {
			if shifted, err = repo.ShiftFrom(ctx, card.Board, req.ColumnName, position, card.ID); err != nil {
				return err
			}
		}

		moved = card.ColumnName != req.ColumnName
		card.ColumnName = req.ColumnName
		card.Position = position
		card.Title = req.Title
		card.Description = req.Description
		card.Priority = priorityOrDefault(req.Priority)

		if err := repo.Update(ctx, card); err != nil {
			return err
		}
		updated = card
		return nil
	})
	if err != nil {
		if repository.IsNotFound(err) {
			s.logger.Debug("Update of unknown card ignored", zap.Int64("card_id", id))
			return nil, nil
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update card", err.Error())
	}

	if moved {
		s.metrics.IncrementCardMoved()
	}
	if shifted > 0 {
		s.logger.Debug("Siblings shifted to make room",
			zap.Int64("card_id", id),
			zap.String("column", updated.ColumnName),
			zap.Int("position", updated.Position),
			zap.Int64("shifted", shifted))
	}

	return updated, nil
}

// DeleteCard removes a card. Deleting an unknown id succeeds.
func (s *cardServiceImpl) DeleteCard(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete card", err.Error())
	}
	if !deleted {
		s.logger.Debug("Delete of unknown card ignored", zap.Int64("card_id", id))
	}
	return nil
}

// ListBoards returns each board label in use with its card count
func (s *cardServiceImpl) ListBoards(ctx context.Context) ([]domain.BoardSummary, error) {
	boards, err := s.repo.ListBoards(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch boards", err.Error())
	}
	return boards, nil
}

func priorityOrDefault(p string) domain.Priority {
	if strings.TrimSpace(p) == "" {
		return domain.PriorityMedium
	}
	return domain.Priority(p)
}

// IsValidationError reports whether err is a validation AppError.
func IsValidationError(err error) bool {
	var appErr *response.AppError
	return errors.As(err, &appErr) && appErr.Code == response.ErrCodeValidation
}
