package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
)

func TestDriverFor(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"kanban.db", DriverSQLite},
		{"/var/lib/kanban/kanban.db", DriverSQLite},
		{":memory:", DriverSQLite},
		{"postgres://kanban@localhost:5432/kanban", DriverPostgres},
		{"PostgreSQL://kanban@db/kanban?sslmode=disable", DriverPostgres},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DriverFor(tt.dsn), tt.dsn)
	}
}

func TestNew_SQLiteFileInNestedDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "kanban.db")

	db, err := New(Config{DSN: path})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, AutoMigrate(db, zap.NewNop()))
	require.NoError(t, Ping(context.Background(), db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestNew_EmptyDSN(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestPing_NilDB(t *testing.T) {
	assert.Error(t, Ping(context.Background(), nil))
}

func TestAutoMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, AutoMigrate(db, zap.NewNop()))
	require.NoError(t, AutoMigrate(db, zap.NewNop()))

	assert.True(t, db.Migrator().HasTable(&domain.Card{}))
	assert.True(t, db.Migrator().HasTable(&domain.Upload{}))
	assert.True(t, db.Migrator().HasColumn(&domain.Upload{}, "gdrive_url"))
	assert.True(t, db.Migrator().HasIndex(&domain.Card{}, "idx_cards_board_column"))
}

func TestDefaultSeed(t *testing.T) {
	cards, err := DefaultSeed()
	require.NoError(t, err)
	require.Len(t, cards, 42)

	for _, c := range cards {
		assert.Equal(t, "Marketing & Sales 60-Day Plan", c.Board)
		assert.NotEmpty(t, c.ColumnName)
		assert.NotEmpty(t, c.Title)
		assert.Contains(t, []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}, c.Priority)
	}
	assert.Equal(t, "Week 1", cards[0].ColumnName)
	assert.Equal(t, 1, cards[0].Position)
	assert.Equal(t, 42, cards[41].Position)
}

func TestParseSeed_Invalid(t *testing.T) {
	_, err := ParseSeed([]byte("cards: []"))
	assert.Error(t, err, "board name required")

	_, err = ParseSeed([]byte("board: B\ncards:\n  - column: Todo\n"))
	assert.Error(t, err, "title required")

	cards, err := ParseSeed([]byte("board: B\ncards:\n  - column: Todo\n    title: T\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, cards[0].Priority)
}

func TestSeedIfEmpty(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	cards, err := DefaultSeed()
	require.NoError(t, err)

	n, err := SeedIfEmpty(ctx, db, cards)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	again, err := DefaultSeed()
	require.NoError(t, err)
	n, err = SeedIfEmpty(ctx, db, again)
	require.NoError(t, err)
	assert.Zero(t, n, "second run must not duplicate the board")

	var count int64
	require.NoError(t, db.Model(&domain.Card{}).Count(&count).Error)
	assert.Equal(t, int64(42), count)
}
