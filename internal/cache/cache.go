// ABOUTME: TTL cache for backend lookups the client repeats
// ABOUTME: Keeps agent health fresh without hitting the backend on every poll

package cache

import (
	"log/slog"
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	staleAt time.Time
}

// Cache holds typed backend lookup results for a fixed freshness window
type Cache[V any] struct {
	lookups sync.Map
	ttl     time.Duration
}

// New creates a cache whose entries stay fresh for ttl. A background sweep
// evicts stale entries so abandoned keys do not accumulate.
func New[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{ttl: ttl}
	go c.sweep()
	return c
}

// Get returns the fresh value for a lookup, or false when the caller must go
// to the backend.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	val, ok := c.lookups.Load(key)
	if !ok {
		slog.Debug("Lookup not cached", "lookup", key)
		return zero, false
	}

	e := val.(entry[V])
	if time.Now().After(e.staleAt) {
		c.lookups.Delete(key)
		slog.Debug("Cached lookup went stale", "lookup", key)
		return zero, false
	}

	slog.Debug("Lookup served from cache", "lookup", key)
	return e.value, true
}

// Set records a lookup result, restarting its freshness window
func (c *Cache[V]) Set(key string, value V) {
	c.lookups.Store(key, entry[V]{value: value, staleAt: time.Now().Add(c.ttl)})
	slog.Debug("Lookup cached", "lookup", key, "ttl", c.ttl)
}

// Clear drops a lookup so the next Get goes to the backend
func (c *Cache[V]) Clear(key string) {
	c.lookups.Delete(key)
}

func (c *Cache[V]) sweep() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.lookups.Range(func(key, val interface{}) bool {
			if now.After(val.(entry[V]).staleAt) {
				c.lookups.Delete(key)
			}
			return true
		})
	}
}
