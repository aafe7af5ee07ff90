package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

type modelInfo struct {
	model     interface{}
	tableName string
}

func models() []modelInfo {
	return []modelInfo{
		{&domain.Card{}, "cards"},
		{&domain.Upload{}, "uploads"},
	}
}

// AutoMigrate creates missing tables, columns and indexes. It never drops
// anything, so running it on every start is safe.
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	for _, m := range models() {
		existed := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		if existed {
			logger.Debug("Table schema checked", zap.String("table", m.tableName))
		} else {
			logger.Info("Table created", zap.String("table", m.tableName))
		}
	}

	return nil
}
