package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kanban-board-api/internal/database"
	"kanban-board-api/internal/domain"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.New(database.Config{DSN: cfg.Database.GetDSN()})
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db, logger); err != nil {
				return err
			}
			logger.Info("Database migrations completed")
			return nil
		},
	}
}

func seedCmd(configPath *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert starter cards into an empty database",
		Long: `Insert starter cards when the cards table is empty.

Without --file the bundled starter board is used. A seed file names one
board and lists its cards:

  board: ops
  cards:
    - column: todo
      position: 1
      title: Rotate credentials
      priority: high
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			cards, err := loadSeed(file)
			if err != nil {
				return err
			}

			db, err := database.New(database.Config{DSN: cfg.Database.GetDSN()})
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db, logger); err != nil {
				return err
			}

			n, err := database.SeedIfEmpty(context.Background(), db, cards)
			if err != nil {
				return err
			}
			if n == 0 {
				logger.Info("Database already has cards, nothing seeded")
				return nil
			}
			logger.Info("Seeded database", zap.Int("cards", n))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file (defaults to the bundled board)")
	return cmd
}

func loadSeed(path string) ([]domain.Card, error) {
	if path == "" {
		return database.DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return database.ParseSeed(data)
}
