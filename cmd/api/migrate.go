package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"portfolio-backend/config"
	"portfolio-backend/internal/repository"
	"portfolio-backend/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables (Postgres) or indexes (MongoDB) and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		logger.Init(cfg.LogLevel, cfg.IsLocal())

		store, err := repository.Open(cfg.DBUrl, cfg.DBName)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		if err := store.Migrate(ctx); err != nil {
			return err
		}
		logger.Log.Info("Schema up to date", "backend", store.Backend)
		return nil
	},
}
