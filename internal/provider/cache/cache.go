package cache

import (
	"sync"
	"time"
)

// entry stores one cached value with its expiry.
type entry struct {
	value     any
	expiresAt time.Time
}

// TTL is a process-wide key -> value store with lazy expiration.
// Expired entries are removed when read or when Cleanup runs; there is no
// size bound and no background sweep.
type TTL struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

// Option configures a TTL cache.
type Option func(*TTL)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *TTL) {
		c.now = now
	}
}

// New creates an empty cache.
func New(opts ...Option) *TTL {
	c := &TTL{items: make(map[string]entry), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key. An entry is live strictly before its
// expiry; reading it at or after expiry deletes it and reports a miss.
func (c *TTL) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl, overwriting any previous entry.
// A non-positive ttl stores nothing.
func (c *TTL) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes key if present.
func (c *TTL) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *TTL) Clear() {
	c.mu.Lock()
	c.items = make(map[string]entry)
	c.mu.Unlock()
}

// Cleanup removes expired entries and returns how many were dropped.
func (c *TTL) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for k, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

// Len is the number of stored entries, expired or not.
func (c *TTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// GetAs is Get with a type assertion; a value of another type is a miss.
func GetAs[T any](c *TTL, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
