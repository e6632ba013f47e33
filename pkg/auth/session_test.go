package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/pkg/auth"
)

func TestSessionManager(t *testing.T) {
	t.Run("Should issue and parse a token", func(t *testing.T) {
		m, err := auth.NewSessionManager("secret", time.Hour)
		require.NoError(t, err)

		token, exp, err := m.Issue("admin")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		claims, err := m.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		a, _ := auth.NewSessionManager("secret-a", time.Hour)
		b, _ := auth.NewSessionManager("secret-b", time.Hour)

		token, _, err := a.Issue("admin")
		require.NoError(t, err)

		_, err = b.Parse(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		m, _ := auth.NewSessionManager("secret", time.Nanosecond)
		token, _, err := m.Issue("admin")
		require.NoError(t, err)

		time.Sleep(1100 * time.Millisecond)
		_, err = m.Parse(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should generate a secret when none is configured", func(t *testing.T) {
		m, err := auth.NewSessionManager("", 0)
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, m.TTL())

		token, _, err := m.Issue("admin")
		require.NoError(t, err)
		_, err = m.Parse(token)
		assert.NoError(t, err)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		m, _ := auth.NewSessionManager("secret", time.Hour)
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	t.Run("Should prefer the hash", func(t *testing.T) {
		assert.True(t, auth.CheckPassword("s3cret", "ignored", hash))
		assert.False(t, auth.CheckPassword("ignored", "ignored", hash))
	})

	t.Run("Should fall back to the plain password", func(t *testing.T) {
		assert.True(t, auth.CheckPassword("s3cret", "s3cret", ""))
		assert.False(t, auth.CheckPassword("wrong", "s3cret", ""))
	})

	t.Run("Should refuse when nothing is configured", func(t *testing.T) {
		assert.False(t, auth.CheckPassword("", "", ""))
	})
}
