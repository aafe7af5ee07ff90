package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector refreshes the card, board and upload gauges on
// a fixed interval.
type BusinessMetricsCollector struct {
	db       *gorm.DB
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	done     chan struct{}
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger, interval time.Duration) *BusinessMetricsCollector {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &BusinessMetricsCollector{
		db:       db,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start collects once immediately and then on every tick until Stop.
func (c *BusinessMetricsCollector) Start() {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.Collect()
		for {
			select {
			case <-ticker.C:
				c.Collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector. It must be called at most once.
func (c *BusinessMetricsCollector) Stop() {
	close(c.done)
}

// Collect runs one collection pass.
func (c *BusinessMetricsCollector) Collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cards int64
	if err := c.db.WithContext(ctx).Table("cards").Count(&cards).Error; err != nil {
		c.logger.Error("Failed to count cards", zap.Error(err))
	} else {
		c.metrics.SetCardsTotal(cards)
	}

	var boards int64
	if err := c.db.WithContext(ctx).Table("cards").Distinct("board").Count(&boards).Error; err != nil {
		c.logger.Error("Failed to count boards", zap.Error(err))
	} else {
		c.metrics.SetBoardsTotal(boards)
	}

	var uploads int64
	if err := c.db.WithContext(ctx).Table("uploads").Count(&uploads).Error; err != nil {
		c.logger.Error("Failed to count uploads", zap.Error(err))
	} else {
		c.metrics.SetUploadsTotal(uploads)
	}
}
