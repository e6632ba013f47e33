package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/pkg/cache"
)

type item struct {
	Name  string   `json:"name"`
	Level int      `json:"level"`
	Tags  []string `json:"tags"`
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Should round-trip a value and report misses", func(t *testing.T) {
		c := cache.NewMemoryCache(time.Minute)

		var out item
		found, err := c.Get(ctx, "k", &out)
		require.NoError(t, err)
		assert.False(t, found)

		in := item{Name: "Go", Level: 80, Tags: []string{"backend"}}
		require.NoError(t, c.Set(ctx, "k", in, time.Minute))

		found, err = c.Get(ctx, "k", &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
	})

	t.Run("Should not share slices with the caller", func(t *testing.T) {
		c := cache.NewMemoryCache(time.Minute)
		in := item{Tags: []string{"a"}}
		require.NoError(t, c.Set(ctx, "k", in, time.Minute))
		in.Tags[0] = "mutated"

		var out item
		_, err := c.Get(ctx, "k", &out)
		require.NoError(t, err)
		assert.Equal(t, "a", out.Tags[0])
	})

	t.Run("Should expire entries", func(t *testing.T) {
		c := cache.NewMemoryCache(time.Minute)
		require.NoError(t, c.Set(ctx, "k", 1, 20*time.Millisecond))
		time.Sleep(40 * time.Millisecond)

		var out int
		found, err := c.Get(ctx, "k", &out)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Should delete keys", func(t *testing.T) {
		c := cache.NewMemoryCache(time.Minute)
		require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
		require.NoError(t, c.Delete(ctx, "a", "b"))

		var out int
		found, _ := c.Get(ctx, "a", &out)
		assert.False(t, found)
		found, _ = c.Get(ctx, "b", &out)
		assert.False(t, found)
	})

	t.Run("Should count within a window and restart after it", func(t *testing.T) {
		c := cache.NewMemoryCache(time.Minute)

		n, ttl, err := c.Incr(ctx, "ctr", 50*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, 50*time.Millisecond, ttl)

		n, _, err = c.Incr(ctx, "ctr", 50*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		time.Sleep(80 * time.Millisecond)
		n, _, err = c.Incr(ctx, "ctr", 50*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("Should count concurrent increments exactly", func(t *testing.T) {
		c := cache.NewMemoryCache(time.Minute)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, _ = c.Incr(ctx, "ctr", time.Minute)
			}()
		}
		wg.Wait()

		n, _, err := c.Incr(ctx, "ctr", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(51), n)
	})
}
