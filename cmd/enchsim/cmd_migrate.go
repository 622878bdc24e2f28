package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/udisondev/monench/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := db.RunMigrations(cmd.Context(), cfg.Database.Driver, cfg.Database.DSN()); err != nil {
			return err
		}
		slog.Info("migrations applied", "driver", cfg.Database.Driver)
		return nil
	},
}
