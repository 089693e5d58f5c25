// Package financego is the secondary US BarSource, built on the
// piquette/finance-go chart iterator.
package financego

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"marketdata/internal/provider"
)

// Iterator is the subset of *chart.Iter the source reads.
type Iterator interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
}

// FetchFunc runs one chart query.
type FetchFunc func(*chart.Params) Iterator

func defaultFetch(p *chart.Params) Iterator { return chart.Get(p) }

// shortWindow is the calendar span fetched for 1d/5d so weekends and
// holidays still leave enough trading days to trim from.
const shortWindow = 10 * 24 * time.Hour

type Config struct {
	Name     string // display name, default: finance-go
	Currency string // default: USD
}

type Source struct {
	cfg   Config
	fetch FetchFunc
	now   func() time.Time
}

type Option func(*Source)

// WithFetch replaces the chart query, mainly for tests.
func WithFetch(f FetchFunc) Option { return func(s *Source) { s.fetch = f } }

// WithClock sets the time source used to compute the query window.
func WithClock(now func() time.Time) Option { return func(s *Source) { s.now = now } }

func New(cfg Config, opts ...Option) *Source {
	if cfg.Name == "" {
		cfg.Name = "finance-go"
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	s := &Source{cfg: cfg, fetch: defaultFetch, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Source) Name() string { return s.cfg.Name }

// FetchChart queries daily bars over the period's calendar span. The
// iterator has no context support, so a cancelled ctx abandons the query.
func (s *Source) FetchChart(ctx context.Context, ticker string, period provider.Period) (*provider.Chart, error) {
	end := s.now().UTC()
	start := end.AddDate(0, 0, -period.Days())
	if period.Intraday() {
		start = end.Add(-shortWindow)
	}
	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	type result struct {
		bars []provider.RawBar
		err  error
	}
	done := make(chan result, 1)
	go func() {
		bars, err := s.collect(params)
		done <- result{bars, err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r = <-done:
	}
	if r.err != nil {
		return nil, fmt.Errorf("%s chart %s: %w", s.cfg.Name, ticker, r.err)
	}

	if period.Intraday() && len(r.bars) > period.Days() {
		r.bars = r.bars[len(r.bars)-period.Days():]
	}
	return &provider.Chart{
		Symbol:   ticker,
		Currency: s.cfg.Currency,
		Bars:     r.bars,
	}, nil
}

func (s *Source) collect(params *chart.Params) ([]provider.RawBar, error) {
	iter := s.fetch(params)
	var out []provider.RawBar
	for iter.Next() {
		bar := iter.Bar()
		if bar == nil {
			continue
		}
		out = append(out, provider.RawBar{
			Time:   time.Unix(int64(bar.Timestamp), 0).UTC(),
			Open:   bar.Open.InexactFloat64(),
			High:   bar.High.InexactFloat64(),
			Low:    bar.Low.InexactFloat64(),
			Close:  bar.Close.InexactFloat64(),
			Volume: float64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
