// Package repository selects the storage backend from the database URL and
// exposes its repositories behind the domain interfaces.
package repository

import (
	"context"
	"fmt"
	"net/url"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository/mongodb"
	"portfolio-backend/internal/repository/postgres"
	"portfolio-backend/pkg/database"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Store bundles the repositories of one backend. Nothing connects until the
// first repository call.
type Store struct {
	Backend    string
	About      domain.AboutRepository
	Projects   domain.ProjectRepository
	Skills     domain.SkillRepository
	Experience domain.ExperienceRepository
	Education  domain.EducationRepository
	Messages   domain.MessageRepository

	migrate func(ctx context.Context) error
	ping    func(ctx context.Context) error
	close   func() error
}

// BackendFor maps a connection string to its backend by URL scheme.
func BackendFor(dbURL string) (string, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	default:
		return "", fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}

// Open builds the store for dbURL. dbName is only used by the document store.
func Open(dbURL, dbName string) (*Store, error) {
	backend, err := BackendFor(dbURL)
	if err != nil {
		return nil, err
	}

	if backend == BackendMongo {
		conn := database.NewMongoConnector(dbURL, dbName)
		return &Store{
			Backend:    BackendMongo,
			About:      mongodb.NewAboutRepository(conn),
			Projects:   mongodb.NewProjectRepository(conn),
			Skills:     mongodb.NewSkillRepository(conn),
			Experience: mongodb.NewExperienceRepository(conn),
			Education:  mongodb.NewEducationRepository(conn),
			Messages:   mongodb.NewMessageRepository(conn),
			migrate:    func(ctx context.Context) error { return mongodb.EnsureIndexes(ctx, conn) },
			ping: func(ctx context.Context) error {
				db, err := conn.Get(ctx)
				if err != nil {
					return err
				}
				return db.Client().Ping(ctx, nil)
			},
			close: conn.Close,
		}, nil
	}

	conn := database.NewPostgresConnector(dbURL)
	return &Store{
		Backend:    BackendPostgres,
		About:      postgres.NewAboutRepository(conn),
		Projects:   postgres.NewProjectRepository(conn),
		Skills:     postgres.NewSkillRepository(conn),
		Experience: postgres.NewExperienceRepository(conn),
		Education:  postgres.NewEducationRepository(conn),
		Messages:   postgres.NewMessageRepository(conn),
		migrate:    func(ctx context.Context) error { return postgres.Migrate(ctx, conn) },
		ping: func(ctx context.Context) error {
			pool, err := conn.Get(ctx)
			if err != nil {
				return err
			}
			return pool.Ping(ctx)
		},
		close: conn.Close,
	}, nil
}

// Migrate creates tables or indexes for the selected backend.
func (s *Store) Migrate(ctx context.Context) error {
	return s.migrate(ctx)
}

// Ping connects if needed and checks the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Store) Close() error {
	return s.close()
}
