package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"portfolio-backend/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the tables and indexes if they do not exist yet.
func Migrate(ctx context.Context, db Pool) error {
	pool, err := db.Get(ctx)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Log.Info("Postgres schema is up to date")
	return nil
}
