package aggregate

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"marketdata/internal/indicator"
	"marketdata/internal/provider"
)

// OverviewSymbols are the chart symbols behind each overview field.
type OverviewSymbols struct {
	SP500  string
	Nasdaq string
	KOSPI  string
	KOSDAQ string
	VIX    string
}

var DefaultOverviewSymbols = OverviewSymbols{
	SP500:  "^GSPC",
	Nasdaq: "^IXIC",
	KOSPI:  "^KS11",
	KOSDAQ: "^KQ11",
	VIX:    "^VIX",
}

// Overview fetches the headline indices and the FX rate concurrently. A
// failed index reads as zero value and zero change; a failed FX lookup as 0.
func (s *Service) Overview(ctx context.Context) (*provider.MarketOverview, error) {
	return load(ctx, s, KeyOverview, func(ctx context.Context) (*provider.MarketOverview, time.Duration, error) {
		var out provider.MarketOverview
		var vix provider.IndexValue
		syms := s.overviewSymbols

		var g errgroup.Group
		for _, t := range []struct {
			sym string
			dst *provider.IndexValue
		}{
			{syms.SP500, &out.SP500},
			{syms.Nasdaq, &out.Nasdaq},
			{syms.KOSPI, &out.KOSPI},
			{syms.KOSDAQ, &out.KOSDAQ},
			{syms.VIX, &vix},
		} {
			g.Go(func() error {
				*t.dst = s.index(ctx, t.sym)
				return nil
			})
		}
		g.Go(func() error {
			if fx, err := s.ExchangeRate(ctx); err == nil {
				out.USDKRW = fx.USDKRW
			}
			return nil
		})
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		out.VIX = vix.Value
		out.UpdatedAt = s.now().UTC()
		return &out, TTLOverview, nil
	})
}

// index reads the last two closes of a 5d chart through the US bar chain.
func (s *Service) index(ctx context.Context, sym string) provider.IndexValue {
	if sym == "" {
		return provider.IndexValue{}
	}
	steps := make([]step[provider.IndexValue], 0, len(s.src.USBars))
	for _, src := range s.src.USBars {
		steps = append(steps, step[provider.IndexValue]{
			source: src.Name(),
			call: func(ctx context.Context) (provider.IndexValue, error) {
				c, err := src.FetchChart(ctx, sym, provider.Period5d)
				if err != nil {
					return provider.IndexValue{}, err
				}
				return IndexFromChart(c)
			},
		})
	}
	v, err := runChain(ctx, s.log, s.timeout, DomainOverview, sym, steps)
	if err != nil {
		return provider.IndexValue{}
	}
	return v
}

// IndexFromChart reduces a chart to its last close and the change from the
// close before it, both rounded to two decimals.
func IndexFromChart(c *provider.Chart) (provider.IndexValue, error) {
	if c == nil {
		return provider.IndexValue{}, fmt.Errorf("%w: nil chart", provider.ErrNoData)
	}
	valid := make([]float64, 0, len(c.Bars))
	for _, b := range c.Bars {
		if b.Close != 0 && !math.IsNaN(b.Close) && !math.IsInf(b.Close, 0) {
			valid = append(valid, b.Close)
		}
	}
	if len(valid) == 0 {
		return provider.IndexValue{}, fmt.Errorf("%w: no closes", provider.ErrNoData)
	}
	last := indicator.Round(valid[len(valid)-1], indicator.PricePlaces)
	prev := last
	if len(valid) >= 2 {
		prev = indicator.Round(valid[len(valid)-2], indicator.PricePlaces)
	}
	return provider.IndexValue{
		Value:  last,
		Change: indicator.Round(last-prev, indicator.PricePlaces),
	}, nil
}
