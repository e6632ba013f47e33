package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/logger"
)

// Collection names
const (
	aboutCollection      = "about"
	projectCollection    = "projects"
	skillCollection      = "skills"
	experienceCollection = "experience"
	educationCollection  = "education"
	messageCollection    = "messages"
)

// Database yields the shared database handle, connecting on first use.
// *database.Connector[*mongo.Database] satisfies it.
type Database interface {
	Get(ctx context.Context) (*mongo.Database, error)
}

func collection(ctx context.Context, db Database, name string) (*mongo.Collection, error) {
	d, err := db.Get(ctx)
	if err != nil {
		return nil, err
	}
	return d.Collection(name), nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	default:
		return err
	}
}

// findOptions turns a list query into sort, skip and limit options. Sort
// keys outside allowed fall back to createdAt.
func findOptions(allowed []string, q domain.ListQuery) *options.FindOptions {
	field := domain.DefaultSort
	for _, f := range allowed {
		if f == q.Sort {
			field = f
			break
		}
	}
	dir := -1
	if !q.Desc() {
		dir = 1
	}

	opts := options.Find().SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit)).SetSkip(int64(q.Offset()))
	}
	return opts
}

// EnsureIndexes creates the unique skill name index and the inbox indexes.
func EnsureIndexes(ctx context.Context, db Database) error {
	d, err := db.Get(ctx)
	if err != nil {
		return err
	}

	if _, err := d.Collection(skillCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("skills_name_key"),
	}); err != nil {
		return fmt.Errorf("create skills index: %w", err)
	}

	if _, err := d.Collection(messageCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "read", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("create messages indexes: %w", err)
	}

	logger.Log.Info("Mongo indexes are up to date")
	return nil
}
