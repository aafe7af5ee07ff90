package repository

import (
	"context"

	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// UploadRepository defines the interface for upload record data access.
// Records are append-only.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) error
	FindRecent(ctx context.Context, limit int) ([]*domain.Upload, error)
	Count(ctx context.Context) (int64, error)
}

type uploadRepositoryImpl struct {
	db *gorm.DB
}

// NewUploadRepository creates a new instance of UploadRepository
func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepositoryImpl{db: db}
}

func (r *uploadRepositoryImpl) Create(ctx context.Context, upload *domain.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

// FindRecent returns at most limit records, newest first.
func (r *uploadRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*domain.Upload, error) {
	uploads := make([]*domain.Upload, 0)
	if err := r.db.WithContext(ctx).
		Order("uploaded_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

func (r *uploadRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Upload{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
