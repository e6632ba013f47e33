package security_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/security"
)

func TestLoginTracker(t *testing.T) {
	ctx := context.Background()
	cfg := security.LoginTrackerConfig{
		MaxAttempts:   3,
		AttemptWindow: time.Minute,
		BlockDuration: time.Minute,
		UseIPTracking: true,
	}

	t.Run("Should block after max attempts", func(t *testing.T) {
		lt := security.NewLoginTracker(cfg, cache.NewMemoryCache(time.Minute), security.NopLogger())

		for i := 1; i < 3; i++ {
			blocked, n, err := lt.RecordFailedAttempt(ctx, "admin", "10.0.0.1", "ua", "rid")
			require.NoError(t, err)
			assert.False(t, blocked)
			assert.Equal(t, i, n)
		}

		blocked, n, err := lt.RecordFailedAttempt(ctx, "admin", "10.0.0.1", "ua", "rid")
		require.NoError(t, err)
		assert.True(t, blocked)
		assert.Equal(t, 3, n)

		isBlocked, err := lt.IsBlocked(ctx, "ADMIN ", "10.9.9.9")
		require.NoError(t, err)
		assert.True(t, isBlocked, "username match is case-insensitive")

		isBlocked, err = lt.IsBlocked(ctx, "someone-else", "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, isBlocked, "source IP is blocked too")
	})

	t.Run("Should reset the counter on success", func(t *testing.T) {
		lt := security.NewLoginTracker(cfg, cache.NewMemoryCache(time.Minute), security.NopLogger())

		_, _, err := lt.RecordFailedAttempt(ctx, "admin", "", "", "")
		require.NoError(t, err)
		_, _, err = lt.RecordFailedAttempt(ctx, "admin", "", "", "")
		require.NoError(t, err)
		require.NoError(t, lt.ClearAttempts(ctx, "admin"))

		blocked, n, err := lt.RecordFailedAttempt(ctx, "admin", "", "", "")
		require.NoError(t, err)
		assert.False(t, blocked)
		assert.Equal(t, 1, n)
	})

	t.Run("Should not block unrelated subjects", func(t *testing.T) {
		lt := security.NewLoginTracker(cfg, cache.NewMemoryCache(time.Minute), security.NopLogger())
		blocked, err := lt.IsBlocked(ctx, "admin", "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("Should log hashed usernames", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		sl := security.NewSecurityLoggerWith(zap.New(core), "portfolio-backend", "test")
		lt := security.NewLoginTracker(cfg, cache.NewMemoryCache(time.Minute), sl)

		_, _, err := lt.RecordFailedAttempt(ctx, "admin", "10.0.0.1", "ua", "rid")
		require.NoError(t, err)

		entries := logs.FilterMessage(string(security.EventLoginFailed)).All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, security.HashValue("admin"), fields["subject_value"])
		assert.Equal(t, "10.0.0.1", fields["ip"])
	})
}
