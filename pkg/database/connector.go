package database

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by Get while Close is releasing the handle.
var ErrClosed = errors.New("database: connector is closing")

// OpenFunc opens a new handle. It is called at most once per successful
// connection; failures are not cached.
type OpenFunc[T any] func(ctx context.Context) (T, error)

// CloseFunc releases a handle returned by OpenFunc.
type CloseFunc[T any] func(T) error

// Connector lazily opens a shared handle on first use. Concurrent first
// callers share one in-flight attempt.
type Connector[T any] struct {
	open  OpenFunc[T]
	close CloseFunc[T]

	mu      sync.RWMutex
	handle  T
	ready   bool
	closing bool
	group   singleflight.Group
}

func NewConnector[T any](open OpenFunc[T], close CloseFunc[T]) *Connector[T] {
	return &Connector[T]{open: open, close: close}
}

// Get returns the open handle, connecting if needed.
func (c *Connector[T]) Get(ctx context.Context) (T, error) {
	c.mu.RLock()
	if c.ready {
		h := c.handle
		c.mu.RUnlock()
		return h, nil
	}
	closing := c.closing
	c.mu.RUnlock()

	var zero T
	if closing {
		return zero, ErrClosed
	}

	v, err, _ := c.group.Do("open", func() (interface{}, error) {
		c.mu.RLock()
		if c.ready {
			h := c.handle
			c.mu.RUnlock()
			return h, nil
		}
		c.mu.RUnlock()

		// Shared attempt must not die with the first caller's request.
		h, err := c.open(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.handle = h
		c.ready = true
		c.mu.Unlock()
		return h, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Connected reports whether a handle is currently open.
func (c *Connector[T]) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Close releases the handle if one was opened. A later Get reconnects.
func (c *Connector[T]) Close() error {
	c.mu.Lock()
	if !c.ready {
		c.mu.Unlock()
		return nil
	}
	h := c.handle
	var zero T
	c.handle = zero
	c.ready = false
	c.closing = true
	c.mu.Unlock()

	var err error
	if c.close != nil {
		err = c.close(h)
	}

	c.mu.Lock()
	c.closing = false
	c.mu.Unlock()
	return err
}
