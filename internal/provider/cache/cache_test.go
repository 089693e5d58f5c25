package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marketdata/internal/provider/cache"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newClock() *clock {
	return &clock{t: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func TestTTL_LiveUntilExpiry(t *testing.T) {
	t.Parallel()

	for _, ttl := range []time.Duration{time.Millisecond, time.Second, 5 * time.Minute, 24 * time.Hour} {
		clk := newClock()
		c := cache.New(cache.WithClock(clk.Now))

		// Arrange: store a value at T
		c.Set("k", 42, ttl)

		// Assert: readable just before T+ttl
		clk.Advance(ttl - time.Nanosecond)
		v, ok := c.Get("k")
		require.Truef(t, ok, "ttl=%v: expected hit before expiry", ttl)
		require.Equal(t, 42, v)

		// Assert: absent at exactly T+ttl
		clk.Advance(time.Nanosecond)
		_, ok = c.Get("k")
		require.Falsef(t, ok, "ttl=%v: expected miss at expiry", ttl)
	}
}

func TestTTL_ExpiredReadRemovesEntry(t *testing.T) {
	t.Parallel()

	clk := newClock()
	c := cache.New(cache.WithClock(clk.Now))
	c.Set("a", "x", time.Second)
	c.Set("b", "y", time.Hour)
	require.Equal(t, 2, c.Len())

	clk.Advance(2 * time.Second)

	// Expired entries linger until observed.
	require.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())
}

func TestTTL_SetOverwrites(t *testing.T) {
	t.Parallel()

	clk := newClock()
	c := cache.New(cache.WithClock(clk.Now))
	c.Set("k", 1, time.Second)
	c.Set("k", 2, time.Minute)

	clk.Advance(30 * time.Second)
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestTTL_NonPositiveTTLStoresNothing(t *testing.T) {
	t.Parallel()

	c := cache.New()
	c.Set("zero", 1, 0)
	c.Set("neg", 1, -time.Second)

	_, ok := c.Get("zero")
	require.False(t, ok)
	_, ok = c.Get("neg")
	require.False(t, ok)
	require.Zero(t, c.Len())
}

func TestTTL_DeleteAndClear(t *testing.T) {
	t.Parallel()

	c := cache.New()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Delete("a")
	c.Delete("missing")
	_, ok := c.Get("a")
	require.False(t, ok)
	_, ok = c.Get("b")
	require.True(t, ok)

	c.Clear()
	require.Zero(t, c.Len())
}

func TestTTL_CleanupCountsExpired(t *testing.T) {
	t.Parallel()

	clk := newClock()
	c := cache.New(cache.WithClock(clk.Now))
	c.Set("short1", 1, time.Second)
	c.Set("short2", 1, 2*time.Second)
	c.Set("long", 1, time.Hour)

	require.Zero(t, c.Cleanup())

	clk.Advance(2 * time.Second)
	require.Equal(t, 2, c.Cleanup())
	require.Equal(t, 1, c.Len())
	require.Zero(t, c.Cleanup())
}

func TestGetAs(t *testing.T) {
	t.Parallel()

	c := cache.New()
	c.Set("n", 7, time.Minute)

	n, ok := cache.GetAs[int](c, "n")
	require.True(t, ok)
	require.Equal(t, 7, n)

	_, ok = cache.GetAs[string](c, "n")
	require.False(t, ok, "wrong type is a miss")

	_, ok = cache.GetAs[int](c, "missing")
	require.False(t, ok)
}

func TestTTL_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := cache.New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.Set("shared", i, time.Minute)
				c.Get("shared")
				c.Cleanup()
			}
		}(i)
	}
	wg.Wait()

	_, ok := c.Get("shared")
	require.True(t, ok)
}
