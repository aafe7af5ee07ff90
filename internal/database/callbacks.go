package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "metrics:query_start_time"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// RegisterMetricsCallbacks times every create, query, row scan, update and
// delete statement issued through db.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	cb := db.Callback()

	return errors.Join(
		cb.Create().Before("gorm:create").Register("metrics:create_before", startQueryTimer),
		cb.Create().After("gorm:create").Register("metrics:create_after", stopQueryTimer(recorder, "insert")),

		cb.Query().Before("gorm:query").Register("metrics:query_before", startQueryTimer),
		cb.Query().After("gorm:query").Register("metrics:query_after", stopQueryTimer(recorder, "select")),

		cb.Row().Before("gorm:row").Register("metrics:row_before", startQueryTimer),
		cb.Row().After("gorm:row").Register("metrics:row_after", stopQueryTimer(recorder, "select")),

		cb.Update().Before("gorm:update").Register("metrics:update_before", startQueryTimer),
		cb.Update().After("gorm:update").Register("metrics:update_after", stopQueryTimer(recorder, "update")),

		cb.Delete().Before("gorm:delete").Register("metrics:delete_before", startQueryTimer),
		cb.Delete().After("gorm:delete").Register("metrics:delete_after", stopQueryTimer(recorder, "delete")),
	)
}

func startQueryTimer(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func stopQueryTimer(recorder MetricsRecorder, operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		// A missing row is an answer, not a failed query.
		err := db.Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = nil
		}
		recorder.RecordDBQuery(operation, table, time.Since(start), err)
	}
}

// StartDBStatsCollector publishes connection pool stats every interval
// until ctx is cancelled.
func StartDBStatsCollector(ctx context.Context, db *gorm.DB, recorder MetricsRecorder, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-ctx.Done():
				return
			}
		}
	}()
}
