package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"portfolio-backend/pkg/logger"
)

// NewMongoConnection connects, pings the primary and returns the named database.
func NewMongoConnection(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(30 * time.Minute).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Log.Info("Database connection established", "driver", "mongo", "database", dbName)
	return client.Database(dbName), nil
}

// NewMongoConnector wraps NewMongoConnection in a lazy Connector.
func NewMongoConnector(uri, dbName string) *Connector[*mongo.Database] {
	return NewConnector(
		func(ctx context.Context) (*mongo.Database, error) {
			return NewMongoConnection(ctx, uri, dbName)
		},
		func(db *mongo.Database) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.Client().Disconnect(ctx)
		},
	)
}
