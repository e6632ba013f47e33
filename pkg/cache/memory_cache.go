package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the single-process fallback. Values are stored encoded so
// callers never share mutable state with the cache.
type MemoryCache struct {
	store *gocache.Cache
	mu    sync.Mutex // serialises Incr's read-modify-write
}

func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (m *MemoryCache) Backend() string { return "memory" }

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return false, nil
	}
	raw, ok := v.([]byte)
	if !ok {
		return false, fmt.Errorf("cached %s is a counter", key)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	m.store.Set(key, raw, ttl)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.store.Delete(k)
	}
	return nil
}

func (m *MemoryCache) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, expiresAt, found := m.store.GetWithExpiration(key); found {
		n, err := m.store.IncrementInt64(key, 1)
		if err != nil {
			return 0, 0, err
		}
		return n, time.Until(expiresAt), nil
	}

	m.store.Set(key, int64(1), window)
	return 1, window, nil
}
