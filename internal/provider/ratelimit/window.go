package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a per-key sliding-window admission controller:
// at most MaxCalls admissions per key within any trailing Period.
type Limiter struct {
	maxCalls int
	period   time.Duration
	now      func() time.Time

	mu      sync.Mutex
	windows map[string][]time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// NewLimiter creates a limiter. maxCalls < 1 is treated as 1.
func NewLimiter(maxCalls int, period time.Duration, opts ...Option) *Limiter {
	if maxCalls < 1 {
		maxCalls = 1
	}
	l := &Limiter{
		maxCalls: maxCalls,
		period:   period,
		now:      time.Now,
		windows:  make(map[string][]time.Time),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// PerMinute is shorthand for NewLimiter(n, time.Minute).
func PerMinute(n int, opts ...Option) *Limiter {
	return NewLimiter(n, time.Minute, opts...)
}

// MaxCalls returns the window capacity.
func (l *Limiter) MaxCalls() int { return l.maxCalls }

// Period returns the window length.
func (l *Limiter) Period() time.Duration { return l.period }

// prune drops timestamps that have left the window. Caller holds mu.
func (l *Limiter) prune(key string, now time.Time) []time.Time {
	ts := l.windows[key]
	i := 0
	for i < len(ts) && now.Sub(ts[i]) >= l.period {
		i++
	}
	if i > 0 {
		ts = append(ts[:0], ts[i:]...)
		l.windows[key] = ts
	}
	return ts
}

// Allow records a call for key and reports whether it was admitted.
// A denied call is not recorded.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	ts := l.prune(key, now)
	if len(ts) >= l.maxCalls {
		return false
	}
	l.windows[key] = append(ts, now)
	return true
}

// WaitTime returns how long until key has a free slot; zero if one is free now.
// It does not consume a slot.
func (l *Limiter) WaitTime(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	ts := l.prune(key, now)
	if len(ts) < l.maxCalls {
		return 0
	}
	wait := l.period - now.Sub(ts[0])
	if wait < 0 {
		wait = 0
	}
	return wait
}
