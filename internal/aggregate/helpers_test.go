package aggregate_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"marketdata/internal/aggregate"
	"marketdata/internal/provider"
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

var epoch = time.Date(2025, 1, 2, 14, 30, 0, 0, time.UTC)

type fixture struct {
	svc   *aggregate.Service
	cache *cache.TTL
	clock *clock
}

func newFixture(t *testing.T, src aggregate.Sources, opts ...aggregate.Option) fixture {
	t.Helper()
	clk := &clock{t: epoch}
	c := cache.New(cache.WithClock(clk.Now))
	opts = append([]aggregate.Option{
		aggregate.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		aggregate.WithClock(clk.Now),
	}, opts...)
	return fixture{svc: aggregate.New(c, src, opts...), cache: c, clock: clk}
}

func barSource(ctrl *gomock.Controller, name string) *MockBarSource {
	m := NewMockBarSource(ctrl)
	m.EXPECT().Name().Return(name).AnyTimes()
	return m
}

func rateSource(ctrl *gomock.Controller, name string) *MockRateSource {
	m := NewMockRateSource(ctrl)
	m.EXPECT().Name().Return(name).AnyTimes()
	return m
}

func fundamentalsSource(ctrl *gomock.Controller, name string) *MockFundamentalsSource {
	m := NewMockFundamentalsSource(ctrl)
	m.EXPECT().Name().Return(name).AnyTimes()
	return m
}

func listingSource(ctrl *gomock.Controller, name string) *MockListingSource {
	m := NewMockListingSource(ctrl)
	m.EXPECT().Name().Return(name).AnyTimes()
	return m
}

// rawBars builds one bar per day starting at epoch; every price equals the close.
func rawBars(closes ...float64) []provider.RawBar {
	out := make([]provider.RawBar, len(closes))
	for i, c := range closes {
		out[i] = provider.RawBar{
			Time:   epoch.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return out
}

func chartOf(symbol string, closes ...float64) *provider.Chart {
	return &provider.Chart{Symbol: symbol, Bars: rawBars(closes...)}
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func ptr(v float64) *float64 { return &v }
