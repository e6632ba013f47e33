package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-backend/pkg/logger"
)

func NewPostgresConnection(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}

	// Fix for transaction-mode poolers (PgBouncer)
	// Prevents "prepared statement already exists" errors
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	config.MaxConns = 25
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Log.Info("Database connection established", "driver", "postgres")
	return pool, nil
}

// NewPostgresConnector wraps NewPostgresConnection in a lazy Connector.
func NewPostgresConnector(connString string) *Connector[*pgxpool.Pool] {
	return NewConnector(
		func(ctx context.Context) (*pgxpool.Pool, error) {
			return NewPostgresConnection(ctx, connString)
		},
		func(pool *pgxpool.Pool) error {
			pool.Close()
			return nil
		},
	)
}
