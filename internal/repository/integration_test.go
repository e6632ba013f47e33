//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/validation"
)

// Run with: go test -tags integration ./internal/repository/...
// Both backends need a local Docker daemon.

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("portfolio"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres: %s", err)
		}
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return url
}

func startMongo(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate mongo: %s", err)
		}
	})

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return url
}

func TestStoreIntegration(t *testing.T) {
	backends := []struct {
		name  string
		start func(t *testing.T) string
	}{
		{name: repository.BackendPostgres, start: startPostgres},
		{name: repository.BackendMongo, start: startMongo},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			store, err := repository.Open(b.start(t), "portfolio")
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			require.NoError(t, store.Migrate(ctx))
			require.NoError(t, store.Ping(ctx))

			testContent(ctx, t, store)
			testMessages(ctx, t, store)
		})
	}
}

func testContent(ctx context.Context, t *testing.T, store *repository.Store) {
	validate := validation.New()

	t.Run("Should keep omitted fields on partial update", func(t *testing.T) {
		uc := usecase.NewProjectUsecase(store.Projects, validate, usecase.ListCache{})

		created, err := uc.Create(ctx, &domain.CreateProjectRequest{
			Title:       "Portfolio",
			Description: "Personal site",
			Tech:        []string{"Go", "PostgreSQL", "Next.js"},
			CodeURL:     "https://github.com/me/portfolio",
		})
		require.NoError(t, err)

		title := "Portfolio v2"
		_, err = uc.Update(ctx, created.ID, &domain.UpdateProjectRequest{Title: &title})
		require.NoError(t, err)

		stored, err := store.Projects.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Portfolio v2", stored.Title)
		assert.Equal(t, "Personal site", stored.Description)
		assert.Equal(t, []string{"Go", "PostgreSQL", "Next.js"}, stored.Tech)
		assert.Equal(t, "https://github.com/me/portfolio", stored.CodeURL)
		assert.False(t, stored.UpdatedAt.Before(stored.CreatedAt))
	})

	t.Run("Should reject duplicate skill names", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		first := &domain.Skill{Base: domain.Base{ID: domain.NewID(), CreatedAt: now, UpdatedAt: now}, Name: "Go", Level: 90}
		require.NoError(t, store.Skills.Create(ctx, first))

		dup := &domain.Skill{Base: domain.Base{ID: domain.NewID(), CreatedAt: now, UpdatedAt: now}, Name: "Go", Level: 10}
		assert.ErrorIs(t, store.Skills.Create(ctx, dup), domain.ErrDuplicate)
	})

	t.Run("Should sort and page lists", func(t *testing.T) {
		base := time.Now().UTC().Truncate(time.Millisecond)
		for i, name := range []string{"Rust", "SQL", "Docker"} {
			at := base.Add(time.Duration(i+1) * time.Second)
			skill := &domain.Skill{Base: domain.Base{ID: domain.NewID(), CreatedAt: at, UpdatedAt: at}, Name: name, Level: 20 * (i + 1)}
			require.NoError(t, store.Skills.Create(ctx, skill))
		}

		all, err := store.Skills.List(ctx, domain.DefaultListQuery())
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "Docker", all[0].Name)

		page, err := store.Skills.List(ctx, domain.ListQuery{Sort: "level", Order: domain.OrderAsc, Limit: 2, Page: 2})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "Docker", page[0].Name)
		assert.Equal(t, "Go", page[1].Name)
	})

	t.Run("Should report missing records", func(t *testing.T) {
		missing := domain.NewID()

		_, err := store.Education.GetByID(ctx, missing)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, store.Projects.Delete(ctx, missing), domain.ErrNotFound)

		ghost := &domain.Skill{Base: domain.Base{ID: missing, UpdatedAt: time.Now().UTC()}, Name: "Ghost"}
		assert.ErrorIs(t, store.Skills.Update(ctx, ghost), domain.ErrNotFound)
	})
}

func testMessages(ctx context.Context, t *testing.T, store *repository.Store) {
	base := time.Now().UTC().Truncate(time.Millisecond)
	inbox := []*domain.Message{
		{Name: "Ann", Email: "ann@example.com", Subject: "ACME inquiry", Content: "Hello"},
		{Name: "Bob", Email: "bob@example.com", Subject: "Hiring", Content: "Are you available?"},
		{Name: "Cid", Email: "cid@example.com", Subject: "Feedback", Content: "Nice site"},
	}
	for i, m := range inbox {
		m.ID = domain.NewID()
		m.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, store.Messages.Create(ctx, m))
	}

	t.Run("Should filter by search and unread", func(t *testing.T) {
		found, total, err := store.Messages.List(ctx, domain.MessageQuery{
			ListQuery: domain.DefaultListQuery(),
			Search:    "acme",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, found, 1)
		assert.Equal(t, inbox[0].ID, found[0].ID)

		latest, err := store.Messages.LatestUnread(ctx, 2)
		require.NoError(t, err)
		require.Len(t, latest, 2)
		assert.Equal(t, inbox[2].ID, latest[0].ID)
	})

	t.Run("Should mark exactly the given ids and count changes", func(t *testing.T) {
		n, err := store.Messages.MarkRead(ctx, []string{inbox[0].ID, inbox[1].ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = store.Messages.MarkRead(ctx, []string{inbox[1].ID, inbox[2].ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		unread, err := store.Messages.CountUnread(ctx)
		require.NoError(t, err)
		assert.Zero(t, unread)

		stored, err := store.Messages.GetByID(ctx, inbox[0].ID)
		require.NoError(t, err)
		assert.True(t, stored.Read)
		assert.True(t, inbox[0].CreatedAt.Equal(stored.CreatedAt))
	})

	t.Run("Should mark all unread", func(t *testing.T) {
		fresh := &domain.Message{ID: domain.NewID(), Name: "Dee", Email: "dee@example.com", Subject: "Hi", Content: "Ping", CreatedAt: base.Add(time.Minute)}
		require.NoError(t, store.Messages.Create(ctx, fresh))

		n, err := store.Messages.MarkAllRead(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, total, err := store.Messages.List(ctx, domain.MessageQuery{ListQuery: domain.DefaultListQuery(), Unread: true})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("Should delete messages", func(t *testing.T) {
		require.NoError(t, store.Messages.Delete(ctx, inbox[2].ID))
		assert.ErrorIs(t, store.Messages.Delete(ctx, inbox[2].ID), domain.ErrNotFound)
	})
}
