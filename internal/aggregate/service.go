// Package aggregate holds the provider fallback orchestrators. Each domain
// checks the shared cache, walks its ordered sources on a miss, normalizes
// the first success into a canonical record and caches it. Concurrent
// misses on one key share a single upstream walk.
//
// Records returned by the Service are shared with the cache and must be
// treated as read-only.
package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"marketdata/internal/provider"
	"marketdata/internal/provider/cache"
)

// DefaultAttemptTimeout bounds one adapter call.
const DefaultAttemptTimeout = 15 * time.Second

// Sources are the ordered chains per domain. Nil or empty chains are allowed;
// a lookup against one fails with ErrUpstreamUnavailable.
type Sources struct {
	USBars         []provider.BarSource
	KRBars         []provider.BarSource
	Rates          []provider.RateSource
	USFundamentals []provider.FundamentalsSource
	KRFundamentals []provider.FundamentalsSource
	// Listing resolves KR company names. Optional.
	Listing provider.ListingSource
}

// Service is the facade the routing layer calls into.
type Service struct {
	cache   *cache.TTL
	log     *slog.Logger
	now     func() time.Time
	timeout time.Duration
	group   singleflight.Group
	src     Sources

	overviewSymbols OverviewSymbols
}

type Option func(*Service)

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock sets the time source for record timestamps.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithAttemptTimeout bounds each adapter call. Zero disables the bound.
func WithAttemptTimeout(d time.Duration) Option { return func(s *Service) { s.timeout = d } }

// WithOverviewSymbols replaces the index symbols used by Overview.
func WithOverviewSymbols(o OverviewSymbols) Option { return func(s *Service) { s.overviewSymbols = o } }

func New(c *cache.TTL, src Sources, opts ...Option) *Service {
	s := &Service{
		cache:           c,
		log:             slog.Default(),
		now:             time.Now,
		timeout:         DefaultAttemptTimeout,
		src:             src,
		overviewSymbols: DefaultOverviewSymbols,
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("component", "aggregate")
	return s
}

// Cache exposes the shared store, e.g. for a cleanup schedule.
func (s *Service) Cache() *cache.TTL { return s.cache }

// load returns the cached value for key or runs fetch once for all
// concurrent callers and caches its result for the returned ttl. Errors are
// never cached. The first caller's context drives the fetch; a caller that
// joined it retries when that context ends first, and every caller stops
// waiting when its own context ends.
func load[T any](ctx context.Context, s *Service, key string, fetch func(ctx context.Context) (T, time.Duration, error)) (T, error) {
	var zero T
	if v, ok := cache.GetAs[T](s.cache, key); ok {
		s.log.Debug("cache hit", "key", key)
		return v, nil
	}
	s.log.Debug("cache miss", "key", key)
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	for {
		ch := s.group.DoChan(key, func() (any, error) {
			if v, ok := cache.GetAs[T](s.cache, key); ok {
				return v, nil
			}
			v, ttl, err := fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil, &abandonedError{err: err}
				}
				return nil, err
			}
			s.cache.Set(key, v, ttl)
			return v, nil
		})

		var r singleflight.Result
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case r = <-ch:
		}
		if r.Shared {
			s.log.Debug("coalesced fetch", "key", key)
		}

		var ab *abandonedError
		if errors.As(r.Err, &ab) {
			if ctx.Err() == nil {
				s.log.Debug("shared fetch abandoned, retrying", "key", key)
				continue
			}
			return zero, ab.err
		}
		if r.Err != nil {
			return zero, r.Err
		}
		return r.Val.(T), nil
	}
}

// abandonedError marks a shared fetch that ended because the context it ran
// under was done, not because the sources failed.
type abandonedError struct{ err error }

func (e *abandonedError) Error() string { return e.err.Error() }

func (e *abandonedError) Unwrap() error { return e.err }
