package database

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

type queryRecord struct {
	operation string
	table     string
	duration  time.Duration
	err       error
}

type mockMetricsRecorder struct {
	mu      sync.Mutex
	queries []queryRecord
	dbStats []sql.DBStats
}

func (m *mockMetricsRecorder) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, queryRecord{operation: operation, table: table, duration: duration, err: err})
}

func (m *mockMetricsRecorder) UpdateDBStats(stats interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := stats.(sql.DBStats); ok {
		m.dbStats = append(m.dbStats, s)
	}
}

func (m *mockMetricsRecorder) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = nil
}

func (m *mockMetricsRecorder) snapshot() []queryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]queryRecord(nil), m.queries...)
}

func (m *mockMetricsRecorder) statsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.dbStats)
}

// setupTestDB opens a migrated in-memory SQLite database pinned to one
// connection so every statement sees the same schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db, zap.NewNop()))
	return db
}

func newCard(title string) *domain.Card {
	return &domain.Card{Board: "Main", ColumnName: "Todo", Title: title, Priority: domain.PriorityMedium, Position: 1}
}

func TestRegisterMetricsCallbacks_RecordsEachOperation(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}
	require.NoError(t, RegisterMetricsCallbacks(db, recorder))

	card := newCard("callbacks")
	require.NoError(t, db.Create(card).Error)

	var found domain.Card
	require.NoError(t, db.First(&found, card.ID).Error)

	require.NoError(t, db.Model(card).Update("title", "renamed").Error)
	require.NoError(t, db.Delete(&domain.Card{}, card.ID).Error)

	queries := recorder.snapshot()
	require.Len(t, queries, 4)
	for i, op := range []string{"insert", "select", "update", "delete"} {
		assert.Equal(t, op, queries[i].operation, "operation %d", i)
		assert.Equal(t, "cards", queries[i].table, "table for operation %d", i)
		assert.GreaterOrEqual(t, queries[i].duration, time.Duration(0))
		assert.NoError(t, queries[i].err)
	}
}

func TestRegisterMetricsCallbacks_ScanIsRecorded(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}
	require.NoError(t, RegisterMetricsCallbacks(db, recorder))

	var max int
	require.NoError(t, db.Model(&domain.Card{}).Select("COALESCE(MAX(position), 0)").Scan(&max).Error)

	queries := recorder.snapshot()
	require.NotEmpty(t, queries)
	assert.Equal(t, "select", queries[0].operation)
}

func TestRegisterMetricsCallbacks_NotFoundIsNotAnError(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}
	require.NoError(t, RegisterMetricsCallbacks(db, recorder))

	var card domain.Card
	err := db.First(&card, 4242).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	queries := recorder.snapshot()
	require.Len(t, queries, 1)
	assert.NoError(t, queries[0].err)
}

func TestRegisterMetricsCallbacks_CreateError(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}
	require.NoError(t, RegisterMetricsCallbacks(db, recorder))

	first := newCard("first")
	require.NoError(t, db.Create(first).Error)
	recorder.reset()

	duplicate := newCard("duplicate")
	duplicate.ID = first.ID
	require.Error(t, db.Create(duplicate).Error)

	queries := recorder.snapshot()
	require.Len(t, queries, 1)
	assert.Equal(t, "insert", queries[0].operation)
	assert.Error(t, queries[0].err)
}

func TestRegisterMetricsCallbacks_TransactionRollback(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}
	require.NoError(t, RegisterMetricsCallbacks(db, recorder))

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(newCard("rolled back")).Error; err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	assert.NotEmpty(t, recorder.snapshot(), "statements inside a rolled back transaction are still timed")

	var count int64
	require.NoError(t, db.Model(&domain.Card{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStartDBStatsCollector_StopsWithContext(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	StartDBStatsCollector(ctx, db, recorder, 10*time.Millisecond)

	assert.Eventually(t, func() bool { return recorder.statsCalls() > 0 }, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(30 * time.Millisecond)
	calls := recorder.statsCalls()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, recorder.statsCalls(), "no collection after cancel")
}
