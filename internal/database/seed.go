package database

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

//go:embed seed/default_board.yaml
var defaultBoardYAML []byte

type seedFile struct {
	Board string     `yaml:"board"`
	Cards []seedCard `yaml:"cards"`
}

type seedCard struct {
	Column      string `yaml:"column"`
	Position    int    `yaml:"position"`
	Priority    string `yaml:"priority"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// ParseSeed turns a seed document into cards ready to insert.
func ParseSeed(data []byte) ([]domain.Card, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if f.Board == "" {
		return nil, fmt.Errorf("seed board name is required")
	}

	cards := make([]domain.Card, 0, len(f.Cards))
	for i, c := range f.Cards {
		if c.Column == "" || c.Title == "" {
			return nil, fmt.Errorf("seed card %d: column and title are required", i)
		}
		priority := domain.Priority(c.Priority)
		if priority == "" {
			priority = domain.PriorityMedium
		}
		cards = append(cards, domain.Card{
			Board:       f.Board,
			ColumnName:  c.Column,
			Title:       c.Title,
			Description: c.Description,
			Priority:    priority,
			Position:    c.Position,
		})
	}
	return cards, nil
}

// DefaultSeed returns the starter board bundled with the binary.
func DefaultSeed() ([]domain.Card, error) {
	return ParseSeed(defaultBoardYAML)
}

// SeedIfEmpty inserts cards when the cards table has no rows and reports
// how many were written.
func SeedIfEmpty(ctx context.Context, db *gorm.DB, cards []domain.Card) (int, error) {
	inserted := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Card{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count cards: %w", err)
		}
		if count > 0 || len(cards) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(cards, 100).Error; err != nil {
			return fmt.Errorf("insert seed cards: %w", err)
		}
		inserted = len(cards)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
