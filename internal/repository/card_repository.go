package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// CardRepository defines the interface for card data access
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	FindByID(ctx context.Context, id int64) (*domain.Card, error)
	FindByBoard(ctx context.Context, board string) ([]*domain.Card, error)
	FindByColumn(ctx context.Context, board, column string) ([]*domain.Card, error)
	MaxPosition(ctx context.Context, board, column string) (int, error)
	PositionTaken(ctx context.Context, board, column string, position int, excludeID int64) (bool, error)
	ShiftFrom(ctx context.Context, board, column string, position int, excludeID int64) (int64, error)
	Update(ctx context.Context, card *domain.Card) error
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	ListBoards(ctx context.Context) ([]domain.BoardSummary, error)
	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error rolls everything back.
	Transaction(ctx context.Context, fn func(repo CardRepository) error) error
}

// cardRepositoryImpl is the GORM implementation of CardRepository
type cardRepositoryImpl struct {
	db *gorm.DB
}

// NewCardRepository creates a new instance of CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepositoryImpl{db: db}
}

func (r *cardRepositoryImpl) Create(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// FindByID returns gorm.ErrRecordNotFound when no card has the id.
func (r *cardRepositoryImpl) FindByID(ctx context.Context, id int64) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.WithContext(ctx).First(&card, id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByBoard returns every card of the board in display order.
func (r *cardRepositoryImpl) FindByBoard(ctx context.Context, board string) ([]*domain.Card, error) {
	cards := make([]*domain.Card, 0)
	if err := r.db.WithContext(ctx).
		Where("board = ?", board).
		Order("position ASC").
		Order("id ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepositoryImpl) FindByColumn(ctx context.Context, board, column string) ([]*domain.Card, error) {
	cards := make([]*domain.Card, 0)
	if err := r.db.WithContext(ctx).
		Where("board = ? AND column_name = ?", board, column).
		Order("position ASC").
		Order("id ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// MaxPosition returns 0 for an empty column.
func (r *cardRepositoryImpl) MaxPosition(ctx context.Context, board, column string) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Where("board = ? AND column_name = ?", board, column).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

func (r *cardRepositoryImpl) PositionTaken(ctx context.Context, board, column string, position int, excludeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Where("board = ? AND column_name = ? AND position = ? AND id <> ?", board, column, position, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ShiftFrom moves every card of the column at or after position one slot
// down, skipping excludeID, and reports how many cards moved.
func (r *cardRepositoryImpl) ShiftFrom(ctx context.Context, board, column string, position int, excludeID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Where("board = ? AND column_name = ? AND position >= ? AND id <> ?", board, column, position, excludeID).
		Update("position", gorm.Expr("position + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Update writes every mutable field of card.
func (r *cardRepositoryImpl) Update(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).
		Model(card).
		Select("column_name", "position", "title", "description", "priority", "updated_at").
		Updates(card).Error
}

// Delete reports whether a row was removed. A missing id is not an error.
func (r *cardRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Card{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *cardRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Card{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListBoards returns each distinct board label with its card count.
func (r *cardRepositoryImpl) ListBoards(ctx context.Context) ([]domain.BoardSummary, error) {
	boards := make([]domain.BoardSummary, 0)
	if err := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Select("board, COUNT(*) AS cards").
		Group("board").
		Order("board ASC").
		Scan(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *cardRepositoryImpl) Transaction(ctx context.Context, fn func(repo CardRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&cardRepositoryImpl{db: tx})
	})
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
