package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"Chirp/internal/config"
	"Chirp/internal/db/migrations"
	"Chirp/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Manage the database schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context(), args[0])
	},
}

func runMigrate(ctx context.Context, direction string) error {
	cfg, err := config.Decode()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	logger, err := logging.New(cfg.LogLevel, "text")
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	switch direction {
	case "up":
		return migrations.Up(db, logger)
	case "down":
		return migrations.Down(db, logger)
	case "status":
		return migrations.Status(db, logger)
	default:
		return fmt.Errorf("unknown migrate direction %q", direction)
	}
}
