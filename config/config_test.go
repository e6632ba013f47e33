package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		t.Setenv("SMTP_USERNAME", "me@example.com")
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
		assert.Equal(t, "me@example.com", cfg.SMTPFromEmail)
		assert.Equal(t, "me@example.com", cfg.ContactEmailTo)
	})

	t.Run("Should parse lists and durations", func(t *testing.T) {
		t.Setenv("CORS_ORIGIN", "https://a.dev/, https://b.dev")
		t.Setenv("CACHE_TTL", "90s")
		t.Setenv("SMTP_SECURE", "true")
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.CORSOrigins)
		assert.Equal(t, 90*time.Second, cfg.CacheTTL)
		assert.True(t, cfg.SMTPSecure)
	})

	t.Run("Should ignore invalid numbers", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "soon")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
	})
}
