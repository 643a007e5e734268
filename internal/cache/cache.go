// Package cache provides the short-lived, size-bounded response cache that
// sits in front of the product search and suggestion endpoints.
//
// A Cache is an explicitly constructed value owned by the service that uses
// it; there is no package-level instance. It is best-effort: a miss, a cold
// start or an eviction only makes a request slower, never wrong.
//
// Semantics:
//   - Get hits only while now - insertedAt < TTL. Expired entries stay in the
//     map until bulk eviction removes them.
//   - Set overwrites unconditionally. When the entry count then exceeds
//     MaxEntries, the EvictCount oldest entries (by insertion time) are
//     dropped, expired or not.
//   - Delete and Clear evict manually.
//
// Every cache reports hits, misses, evictions and size to Prometheus under
// its name label.
package cache

import (
	"sort"
	"sync"
	"time"
)

// Defaults applied by New.
const (
	DefaultTTL        = 60 * time.Second
	DefaultMaxEntries = 100
	DefaultEvictCount = 20
)

type entry[T any] struct {
	value      T
	insertedAt time.Time
}

// Cache maps normalized request keys to response payloads. It is safe for
// concurrent use.
type Cache[T any] struct {
	name       string
	ttl        time.Duration
	maxEntries int
	evictCount int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]entry[T]
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	ttl        time.Duration
	maxEntries int
	evictCount int
	now        func() time.Time
}

// WithTTL sets how long an entry is served after insertion. Values <= 0 are ignored.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithMaxEntries sets the size ceiling that triggers bulk eviction.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxEntries = n
		}
	}
}

// WithEvictCount sets how many of the oldest entries are dropped once the
// ceiling is exceeded.
func WithEvictCount(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.evictCount = n
		}
	}
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New returns an empty cache. name labels its metrics (e.g. "search").
func New[T any](name string, opts ...Option) *Cache[T] {
	o := options{
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		evictCount: DefaultEvictCount,
		now:        time.Now,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return &Cache[T]{
		name:       name,
		ttl:        o.ttl,
		maxEntries: o.maxEntries,
		evictCount: o.evictCount,
		now:        o.now,
		entries:    make(map[string]entry[T]),
	}
}

// Name returns the metrics label of the cache.
func (c *Cache[T]) Name() string { return c.name }

// TTL returns the configured time-to-live.
func (c *Cache[T]) TTL() time.Duration { return c.ttl }

// Get returns the payload for key when present and fresh.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	e, ok := c.entries[key]
	fresh := ok && c.now().Sub(e.insertedAt) < c.ttl
	c.mu.Unlock()

	if !fresh {
		cacheMisses.WithLabelValues(c.name).Inc()
		var zero T
		return zero, false
	}
	cacheHits.WithLabelValues(c.name).Inc()
	return e.value, true
}

// Set stores v under key and applies size-based eviction.
func (c *Cache[T]) Set(key string, v T) {
	c.mu.Lock()
	c.entries[key] = entry[T]{value: v, insertedAt: c.now()}
	evicted := 0
	if len(c.entries) > c.maxEntries {
		evicted = c.evictOldestLocked(c.evictCount)
	}
	size := len(c.entries)
	c.mu.Unlock()

	if evicted > 0 {
		cacheEvictions.WithLabelValues(c.name).Add(float64(evicted))
	}
	cacheEntries.WithLabelValues(c.name).Set(float64(size))
}

// Delete removes key if present.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	size := len(c.entries)
	c.mu.Unlock()
	cacheEntries.WithLabelValues(c.name).Set(float64(size))
}

// Clear drops every entry and returns how many were removed.
func (c *Cache[T]) Clear() int {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]entry[T])
	c.mu.Unlock()

	if n > 0 {
		cacheEvictions.WithLabelValues(c.name).Add(float64(n))
	}
	cacheEntries.WithLabelValues(c.name).Set(0)
	return n
}

// Len returns the number of stored entries, fresh or stale.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldestLocked deletes the n entries with the earliest insertion time.
// Ties are broken by key so eviction is deterministic. c.mu must be held.
func (c *Cache[T]) evictOldestLocked(n int) int {
	type aged struct {
		key string
		at  time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, at: e.insertedAt})
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].at.Equal(all[j].at) {
			return all[i].at.Before(all[j].at)
		}
		return all[i].key < all[j].key
	})
	if n > len(all) {
		n = len(all)
	}
	for _, a := range all[:n] {
		delete(c.entries, a.key)
	}
	return n
}
