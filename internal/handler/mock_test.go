package handler

import (
	"context"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/service"
	"kanban-board-api/internal/session"
)

// MockCardService is a mock implementation of CardService
type MockCardService struct {
	ListCardsFunc  func(ctx context.Context, board string) ([]*domain.Card, error)
	CreateCardFunc func(ctx context.Context, req *dto.CreateCardRequest) (*domain.Card, error)
	UpdateCardFunc func(ctx context.Context, id int64, req *dto.UpdateCardRequest) (*domain.Card, error)
	DeleteCardFunc func(ctx context.Context, id int64) error
	ListBoardsFunc func(ctx context.Context) ([]domain.BoardSummary, error)
}

func (m *MockCardService) ListCards(ctx context.Context, board string) ([]*domain.Card, error) {
	if m.ListCardsFunc != nil {
		return m.ListCardsFunc(ctx, board)
	}
	return []*domain.Card{}, nil
}

func (m *MockCardService) CreateCard(ctx context.Context, req *dto.CreateCardRequest) (*domain.Card, error) {
	if m.CreateCardFunc != nil {
		return m.CreateCardFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockCardService) UpdateCard(ctx context.Context, id int64, req *dto.UpdateCardRequest) (*domain.Card, error) {
	if m.UpdateCardFunc != nil {
		return m.UpdateCardFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockCardService) DeleteCard(ctx context.Context, id int64) error {
	if m.DeleteCardFunc != nil {
		return m.DeleteCardFunc(ctx, id)
	}
	return nil
}

func (m *MockCardService) ListBoards(ctx context.Context) ([]domain.BoardSummary, error) {
	if m.ListBoardsFunc != nil {
		return m.ListBoardsFunc(ctx)
	}
	return []domain.BoardSummary{}, nil
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	LoginFunc  func(ctx context.Context, password string) (string, *session.Session, error)
	LogoutFunc func(ctx context.Context, token string) error
	StatusFunc func(ctx context.Context, token string) bool
}

func (m *MockAuthService) Login(ctx context.Context, password string) (string, *session.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, password)
	}
	return "", nil, nil
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthService) Status(ctx context.Context, token string) bool {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, token)
	}
	return false
}

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	UploadFunc      func(ctx context.Context, in *service.UploadInput) (*service.UploadResult, error)
	ListUploadsFunc func(ctx context.Context) ([]*domain.Upload, error)
	Mirror          string
}

func (m *MockUploadService) Upload(ctx context.Context, in *service.UploadInput) (*service.UploadResult, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, in)
	}
	return nil, nil
}

func (m *MockUploadService) ListUploads(ctx context.Context) ([]*domain.Upload, error) {
	if m.ListUploadsFunc != nil {
		return m.ListUploadsFunc(ctx)
	}
	return []*domain.Upload{}, nil
}

func (m *MockUploadService) MirrorName() string { return m.Mirror }
