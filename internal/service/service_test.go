package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
)

// setupTestDB opens a migrated in-memory SQLite database pinned to one
// connection.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to open database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&domain.Card{}, &domain.Upload{}))
	return db
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func newCardService(t *testing.T) (CardService, repository.CardRepository, *metrics.Metrics) {
	t.Helper()
	repo := repository.NewCardRepository(setupTestDB(t))
	m := newTestMetrics()
	return NewCardService(repo, m, zap.NewNop()), repo, m
}

// MockCardRepository is a mock implementation of CardRepository
type MockCardRepository struct {
	CreateFunc        func(ctx context.Context, card *domain.Card) error
	FindByIDFunc      func(ctx context.Context, id int64) (*domain.Card, error)
	FindByBoardFunc   func(ctx context.Context, board string) ([]*domain.Card, error)
	MaxPositionFunc   func(ctx context.Context, board, column string) (int, error)
	PositionTakenFunc func(ctx context.Context, board, column string, position int, excludeID int64) (bool, error)
	ShiftFromFunc     func(ctx context.Context, board, column string, position int, excludeID int64) (int64, error)
	UpdateFunc        func(ctx context.Context, card *domain.Card) error
	DeleteFunc        func(ctx context.Context, id int64) (bool, error)
	ListBoardsFunc    func(ctx context.Context) ([]domain.BoardSummary, error)
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.Card) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, card)
	}
	return nil
}

func (m *MockCardRepository) FindByID(ctx context.Context, id int64) (*domain.Card, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCardRepository) FindByBoard(ctx context.Context, board string) ([]*domain.Card, error) {
	if m.FindByBoardFunc != nil {
		return m.FindByBoardFunc(ctx, board)
	}
	return []*domain.Card{}, nil
}

func (m *MockCardRepository) FindByColumn(ctx context.Context, board, column string) ([]*domain.Card, error) {
	return []*domain.Card{}, nil
}

func (m *MockCardRepository) MaxPosition(ctx context.Context, board, column string) (int, error) {
	if m.MaxPositionFunc != nil {
		return m.MaxPositionFunc(ctx, board, column)
	}
	return 0, nil
}

func (m *MockCardRepository) PositionTaken(ctx context.Context, board, column string, position int, excludeID int64) (bool, error) {
	if m.PositionTakenFunc != nil {
		return m.PositionTakenFunc(ctx, board, column, position, excludeID)
	}
	return false, nil
}

func (m *MockCardRepository) ShiftFrom(ctx context.Context, board, column string, position int, excludeID int64) (int64, error) {
	if m.ShiftFromFunc != nil {
		return m.ShiftFromFunc(ctx, board, column, position, excludeID)
	}
	return 0, nil
}

func (m *MockCardRepository) Update(ctx context.Context, card *domain.Card) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, card)
	}
	return nil
}

func (m *MockCardRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockCardRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *MockCardRepository) ListBoards(ctx context.Context) ([]domain.BoardSummary, error) {
	if m.ListBoardsFunc != nil {
		return m.ListBoardsFunc(ctx)
	}
	return []domain.BoardSummary{}, nil
}

// Transaction runs fn against the mock itself.
func (m *MockCardRepository) Transaction(ctx context.Context, fn func(repo repository.CardRepository) error) error {
	return fn(m)
}
