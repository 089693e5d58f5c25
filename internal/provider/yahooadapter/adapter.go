// Package yahooadapter maps the strict yahoo client schemas onto the
// provider interfaces. One client backs several adapters: KR tickers are
// tried as ".KS" (KOSPI) and ".KQ" (KOSDAQ) symbols by separate instances.
package yahooadapter

import (
	"context"
	"fmt"
	"time"

	"marketdata/internal/provider"
	"marketdata/internal/provider/yahoo"
)

const (
	// SuffixKOSPI marks a KOSPI-listed symbol.
	SuffixKOSPI = ".KS"
	// SuffixKOSDAQ marks a KOSDAQ-listed symbol.
	SuffixKOSDAQ = ".KQ"

	// FXSymbol is the USD/KRW pair on the chart endpoint.
	FXSymbol = "KRW=X"

	dailyInterval = "1d"
)

type Config struct {
	Name   string // display name, default: yahoo (plus the suffix when set)
	Suffix string // appended to every ticker, e.g. ".KS"
	// Profile enriches charts with sector, industry and market cap from the
	// quote-summary endpoint. Costs one extra upstream call; failures are ignored.
	Profile bool
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "yahoo" + c.Suffix
	}
	return c
}

// Bars is a provider.BarSource over the chart endpoint.
type Bars struct {
	cfg    Config
	client *yahoo.Client
}

func NewBars(cfg Config, client *yahoo.Client) *Bars {
	return &Bars{cfg: cfg.withDefaults(), client: client}
}

func (b *Bars) Name() string { return b.cfg.Name }

// Symbol is the upstream symbol for ticker.
func (b *Bars) Symbol(ticker string) string { return ticker + b.cfg.Suffix }

func (b *Bars) FetchChart(ctx context.Context, ticker string, period provider.Period) (*provider.Chart, error) {
	sym := b.Symbol(ticker)
	res, err := b.client.Chart(ctx, sym, string(period), dailyInterval)
	if err != nil {
		return nil, fmt.Errorf("%s chart %s: %w", b.cfg.Name, sym, err)
	}
	out := ToChart(res)
	if b.cfg.Profile {
		b.enrich(ctx, sym, out)
	}
	return out, nil
}

func (b *Bars) enrich(ctx context.Context, sym string, out *provider.Chart) {
	s, err := b.client.QuoteSummary(ctx, sym, "assetProfile", "price")
	if err != nil {
		return
	}
	out.Sector = s.AssetProfile.String("sector")
	out.Industry = s.AssetProfile.String("industry")
	out.MarketCap = s.Price.Raw("marketCap")
}

// ToChart converts a chart result into the adapter-neutral shape. Null
// cells become zero, which normalization treats as missing.
func ToChart(res *yahoo.ChartResult) *provider.Chart {
	q := res.Quote()
	name := res.Meta.ShortName
	if name == "" {
		name = res.Meta.LongName
	}
	out := &provider.Chart{
		Symbol:   res.Meta.Symbol,
		Name:     name,
		Currency: res.Meta.Currency,
		Bars:     make([]provider.RawBar, 0, len(res.Timestamp)),
	}
	for i, ts := range res.Timestamp {
		out.Bars = append(out.Bars, provider.RawBar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   at(q.Open, i),
			High:   at(q.High, i),
			Low:    at(q.Low, i),
			Close:  at(q.Close, i),
			Volume: at(q.Volume, i),
		})
	}
	return out
}

func at(col []*float64, i int) float64 {
	if i >= len(col) || col[i] == nil {
		return 0
	}
	return *col[i]
}

// lastClose returns the last non-null close of a chart result.
func lastClose(res *yahoo.ChartResult) (float64, bool) {
	closes := res.Quote().Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil && *closes[i] > 0 {
			return *closes[i], true
		}
	}
	return 0, false
}
