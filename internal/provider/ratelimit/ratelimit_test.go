package ratelimit_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marketdata/internal/provider"
	"marketdata/internal/provider/bok"
	"marketdata/internal/provider/ratelimit"
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

func TestLimiter_DeniesAfterMaxCallsUntilOldestAgesOut(t *testing.T) {
	t.Parallel()

	clk := newClock()
	l := ratelimit.NewLimiter(3, time.Minute, ratelimit.WithClock(clk.Now))

	// Arrange: three admissions spread over 20s
	for i := 0; i < 3; i++ {
		require.Truef(t, l.Allow("k"), "call %d should be admitted", i)
		clk.Advance(10 * time.Second)
	}

	// Assert: window full at t=30s
	require.False(t, l.Allow("k"))
	require.Equal(t, 30*time.Second, l.WaitTime("k"))

	// Assert: still full just before the first call ages out
	clk.Advance(30*time.Second - time.Millisecond)
	require.False(t, l.Allow("k"))

	// Assert: one slot frees at exactly period after the first call
	clk.Advance(time.Millisecond)
	require.Zero(t, l.WaitTime("k"))
	require.True(t, l.Allow("k"))
	require.False(t, l.Allow("k"))
}

func TestLimiter_WaitTimeMonotonic(t *testing.T) {
	t.Parallel()

	clk := newClock()
	l := ratelimit.NewLimiter(2, time.Minute, ratelimit.WithClock(clk.Now))
	require.True(t, l.Allow("k"))
	require.True(t, l.Allow("k"))

	prev := l.WaitTime("k")
	require.Equal(t, time.Minute, prev)
	for i := 0; i < 70; i++ {
		clk.Advance(time.Second)
		w := l.WaitTime("k")
		require.Truef(t, w <= prev, "wait grew from %v to %v", prev, w)
		require.True(t, w >= 0)
		prev = w
	}
	require.Zero(t, prev)
}

func TestLimiter_WaitTimeDoesNotConsume(t *testing.T) {
	t.Parallel()

	l := ratelimit.NewLimiter(1, time.Minute)
	for i := 0; i < 5; i++ {
		require.Zero(t, l.WaitTime("k"))
	}
	require.True(t, l.Allow("k"))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := ratelimit.NewLimiter(1, time.Minute)
	require.True(t, l.Allow("yahoo"))
	require.False(t, l.Allow("yahoo"))
	require.True(t, l.Allow("bok"))
}

func TestLimiter_ConcurrentNeverOverAdmits(t *testing.T) {
	t.Parallel()

	l := ratelimit.NewLimiter(60, time.Minute)
	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if l.Allow("k") {
					admitted.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	require.EqualValues(t, 60, admitted.Load())
}

type fakeBars struct{ calls int }

func (f *fakeBars) Name() string { return "fake" }
func (f *fakeBars) FetchChart(_ context.Context, symbol string, _ provider.Period) (*provider.Chart, error) {
	f.calls++
	return &provider.Chart{Symbol: symbol}, nil
}

func TestBars_DeniedCallReturnsErrLimited(t *testing.T) {
	t.Parallel()

	src := &fakeBars{}
	gated := &ratelimit.Bars{S: src, L: ratelimit.NewLimiter(1, time.Minute), Key: "yahoo"}
	require.Equal(t, "fake", gated.Name())

	_, err := gated.FetchChart(t.Context(), "AAPL", provider.Period1y)
	require.NoError(t, err)

	_, err = gated.FetchChart(t.Context(), "AAPL", provider.Period1y)
	require.ErrorIs(t, err, ratelimit.ErrLimited)
	var le *ratelimit.LimitedError
	require.True(t, errors.As(err, &le))
	require.Equal(t, "yahoo", le.Key)
	require.True(t, le.Wait > 0)
	require.Equal(t, 1, src.calls, "denied call must not reach the source")
}

func TestBars_NilLimiterPassesThrough(t *testing.T) {
	t.Parallel()

	src := &fakeBars{}
	gated := &ratelimit.Bars{S: src}
	for i := 0; i < 3; i++ {
		_, err := gated.FetchChart(t.Context(), "AAPL", provider.Period1y)
		require.NoError(t, err)
	}
	require.Equal(t, 3, src.calls)
}

type plainRates struct{}

func (plainRates) Name() string { return "plain" }

func (plainRates) FetchUSDKRW(context.Context) (*provider.RateQuote, error) {
	return &provider.RateQuote{Rate: 1400}, nil
}

func TestRates_ConfiguredForwardsToSource(t *testing.T) {
	t.Parallel()

	lim := ratelimit.NewLimiter(5, time.Minute)
	keyless := &ratelimit.Rates{S: bok.New(bok.Config{}, nil), L: lim, Key: "bok"}
	keyed := &ratelimit.Rates{S: bok.New(bok.Config{APIKey: "secret"}, nil), L: lim, Key: "bok"}
	plain := &ratelimit.Rates{S: plainRates{}, L: lim, Key: "yahoo"}

	require.False(t, keyless.Configured())
	require.True(t, keyed.Configured())
	require.True(t, plain.Configured())
}
