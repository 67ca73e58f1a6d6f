package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline/internal/migrations"
	"github.com/ledgerline/ledgerline/internal/platform/config"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			slog.SetDefault(logger)

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			applied, err := migrations.Up(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if applied {
				logger.Info("Database migrations applied")
			} else {
				logger.Info("No new migrations to apply")
			}
			return nil
		},
	}
}
