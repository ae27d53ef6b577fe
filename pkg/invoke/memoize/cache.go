package memoize

import (
	"sync"

	"github.com/vnykmshr/goinvoke/pkg/metrics"
)

// Cache is the mapping from derived key to memoized result. It is exposed by
// Memoizer.Cache so callers can inspect, seed, or clear it between calls.
// It is unbounded and safe for concurrent use.
type Cache[K comparable, R any] struct {
	mu      sync.RWMutex
	entries map[K]R
	metrics *metrics.Recorder
}

func newCache[K comparable, R any](rec *metrics.Recorder) *Cache[K, R] {
	return &Cache[K, R]{
		entries: make(map[K]R),
		metrics: rec,
	}
}

// Get returns the value cached under key and whether it was present.
func (c *Cache[K, R]) Get(key K) (R, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Has reports whether key is cached.
func (c *Cache[K, R]) Has(key K) bool {
	_, ok := c.Get(key)
	return ok
}

// Set caches value under key, replacing any previous value.
func (c *Cache[K, R]) Set(key K, value R) {
	c.mu.Lock()
	c.entries[key] = value
	n := len(c.entries)
	c.mu.Unlock()

	c.metrics.CacheSize(n)
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, R]) Delete(key K) bool {
	c.mu.Lock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	n := len(c.entries)
	c.mu.Unlock()

	c.metrics.CacheSize(n)
	return ok
}

// Clear removes every entry.
func (c *Cache[K, R]) Clear() {
	c.mu.Lock()
	c.entries = make(map[K]R)
	c.mu.Unlock()

	c.metrics.CacheSize(0)
	c.metrics.CacheReset()
}

// Len returns the number of cached entries.
func (c *Cache[K, R]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the cached keys in unspecified order.
func (c *Cache[K, R]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]K, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot returns a copy of the mapping.
func (c *Cache[K, R]) Snapshot() map[K]R {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[K]R, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}
