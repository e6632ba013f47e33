package database_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/pkg/database"
)

type fakeHandle struct {
	id     int32
	closed atomic.Bool
}

func TestConnector(t *testing.T) {
	t.Run("Should share one attempt between concurrent first callers", func(t *testing.T) {
		var attempts atomic.Int32
		release := make(chan struct{})

		conn := database.NewConnector(func(ctx context.Context) (*fakeHandle, error) {
			n := attempts.Add(1)
			<-release
			return &fakeHandle{id: n}, nil
		}, nil)

		const callers = 20
		var wg sync.WaitGroup
		results := make([]*fakeHandle, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				h, err := conn.Get(context.Background())
				assert.NoError(t, err)
				results[i] = h
			}(i)
		}

		// Let the goroutines pile up behind the in-flight attempt.
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), attempts.Load())
		for _, h := range results {
			assert.Same(t, results[0], h)
		}
	})

	t.Run("Should not cache a failed attempt", func(t *testing.T) {
		var attempts atomic.Int32
		conn := database.NewConnector(func(ctx context.Context) (*fakeHandle, error) {
			if attempts.Add(1) == 1 {
				return nil, errors.New("connection refused")
			}
			return &fakeHandle{id: 2}, nil
		}, nil)

		_, err := conn.Get(context.Background())
		require.Error(t, err)
		assert.False(t, conn.Connected())

		h, err := conn.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(2), h.id)
		assert.True(t, conn.Connected())
	})

	t.Run("Should return the cached handle without reopening", func(t *testing.T) {
		var attempts atomic.Int32
		conn := database.NewConnector(func(ctx context.Context) (*fakeHandle, error) {
			return &fakeHandle{id: attempts.Add(1)}, nil
		}, nil)

		first, err := conn.Get(context.Background())
		require.NoError(t, err)
		second, err := conn.Get(context.Background())
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("Should close and reopen", func(t *testing.T) {
		var attempts atomic.Int32
		conn := database.NewConnector(
			func(ctx context.Context) (*fakeHandle, error) {
				return &fakeHandle{id: attempts.Add(1)}, nil
			},
			func(h *fakeHandle) error {
				h.closed.Store(true)
				return nil
			},
		)

		first, err := conn.Get(context.Background())
		require.NoError(t, err)
		require.NoError(t, conn.Close())
		assert.True(t, first.closed.Load())
		assert.False(t, conn.Connected())

		second, err := conn.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(2), second.id)
		assert.False(t, second.closed.Load())
	})

	t.Run("Should treat Close without a handle as a no-op", func(t *testing.T) {
		conn := database.NewConnector(func(ctx context.Context) (*fakeHandle, error) {
			return &fakeHandle{}, nil
		}, func(h *fakeHandle) error {
			return errors.New("should not be called")
		})
		assert.NoError(t, conn.Close())
	})

	t.Run("Should not let a cancelled caller abort the shared attempt", func(t *testing.T) {
		conn := database.NewConnector(func(ctx context.Context) (*fakeHandle, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return &fakeHandle{id: 1}, nil
		}, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		h, err := conn.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, int32(1), h.id)
	})
}
