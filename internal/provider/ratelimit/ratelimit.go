package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketdata/internal/provider"
)

// ErrLimited is returned by gated sources when the window is full.
// Gates never block; the caller decides whether to wait or fall back.
var ErrLimited = errors.New("rate limited")

// LimitedError carries the key and the time until the next free slot.
type LimitedError struct {
	Key  string
	Wait time.Duration
}

func (e *LimitedError) Error() string {
	return fmt.Sprintf("rate limited on %q, next slot in %s", e.Key, e.Wait.Round(time.Millisecond))
}

func (e *LimitedError) Unwrap() error { return ErrLimited }

func admit(l *Limiter, key string) error {
	if l == nil || l.Allow(key) {
		return nil
	}
	return &LimitedError{Key: key, Wait: l.WaitTime(key)}
}

// Bars gates a BarSource behind a limiter key.
type Bars struct {
	S   provider.BarSource
	L   *Limiter
	Key string
}

func (b *Bars) Name() string { return b.S.Name() }

func (b *Bars) FetchChart(ctx context.Context, symbol string, period provider.Period) (*provider.Chart, error) {
	if err := admit(b.L, b.Key); err != nil {
		return nil, err
	}
	return b.S.FetchChart(ctx, symbol, period)
}

// Rates gates a RateSource behind a limiter key.
type Rates struct {
	S   provider.RateSource
	L   *Limiter
	Key string
}

func (r *Rates) Name() string { return r.S.Name() }

// Configured forwards to the wrapped source; sources without a credential
// check count as configured.
func (r *Rates) Configured() bool {
	if c, ok := r.S.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

func (r *Rates) FetchUSDKRW(ctx context.Context) (*provider.RateQuote, error) {
	if err := admit(r.L, r.Key); err != nil {
		return nil, err
	}
	return r.S.FetchUSDKRW(ctx)
}

// Fundamentals gates a FundamentalsSource behind a limiter key.
type Fundamentals struct {
	S   provider.FundamentalsSource
	L   *Limiter
	Key string
}

func (f *Fundamentals) Name() string { return f.S.Name() }

func (f *Fundamentals) FetchFundamentals(ctx context.Context, symbol string) (*provider.Fundamentals, error) {
	if err := admit(f.L, f.Key); err != nil {
		return nil, err
	}
	return f.S.FetchFundamentals(ctx, symbol)
}
