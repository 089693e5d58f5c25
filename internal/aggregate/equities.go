package aggregate

import (
	"context"
	"fmt"
	"time"

	"marketdata/internal/provider"
)

const (
	usPricePlaces = 2
	krPricePlaces = 0

	defaultUSCurrency = "USD"
	krCurrency        = "KRW"
)

// Stock returns the equities record for ticker over period. Unknown periods
// fall back to the default period before the cache key is built.
func (s *Service) Stock(ctx context.Context, market provider.Market, ticker string, period provider.Period) (*provider.QuoteSnapshot, error) {
	ticker, err := NormalizeTicker(market, ticker)
	if err != nil {
		return nil, err
	}
	period = provider.ParsePeriod(string(period))

	if market == provider.MarketKR {
		return s.krStock(ctx, ticker, period)
	}
	return s.usStock(ctx, ticker, period)
}

func (s *Service) usStock(ctx context.Context, ticker string, period provider.Period) (*provider.QuoteSnapshot, error) {
	return load(ctx, s, StockKey(provider.MarketUS, ticker, period), func(ctx context.Context) (*provider.QuoteSnapshot, time.Duration, error) {
		steps := barSteps(s.src.USBars, ticker, period, func(c *provider.Chart) (*provider.QuoteSnapshot, error) {
			return usSnapshot(ticker, c)
		})
		q, err := runChain(ctx, s.log, s.timeout, DomainUSStock, ticker, steps)
		return q, StockTTL(period), err
	})
}

func (s *Service) krStock(ctx context.Context, ticker string, period provider.Period) (*provider.QuoteSnapshot, error) {
	return load(ctx, s, StockKey(provider.MarketKR, ticker, period), func(ctx context.Context) (*provider.QuoteSnapshot, time.Duration, error) {
		// The name lookup runs beside the bar chain and never fails it.
		names := make(chan string, 1)
		go func() { names <- s.krName(ctx, ticker) }()

		steps := barSteps(s.src.KRBars, ticker, period, func(c *provider.Chart) (*provider.QuoteSnapshot, error) {
			return krSnapshot(ticker, c)
		})
		q, err := runChain(ctx, s.log, s.timeout, DomainKRStock, ticker, steps)
		name := <-names
		if err != nil {
			return nil, 0, err
		}
		q.Info.Name = name
		return q, StockTTL(period), nil
	})
}

func barSteps(sources []provider.BarSource, ticker string, period provider.Period, normalize func(*provider.Chart) (*provider.QuoteSnapshot, error)) []step[*provider.QuoteSnapshot] {
	steps := make([]step[*provider.QuoteSnapshot], 0, len(sources))
	for _, src := range sources {
		steps = append(steps, step[*provider.QuoteSnapshot]{
			source: src.Name(),
			call: func(ctx context.Context) (*provider.QuoteSnapshot, error) {
				c, err := src.FetchChart(ctx, ticker, period)
				if err != nil {
					return nil, err
				}
				return normalize(c)
			},
		})
	}
	return steps
}

func usSnapshot(ticker string, c *provider.Chart) (*provider.QuoteSnapshot, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil chart", provider.ErrNoData)
	}
	bars := NormalizeBars(c.Bars, usPricePlaces)
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no usable bars for %s", provider.ErrNoData, ticker)
	}
	info := provider.StockInfo{
		Ticker:    ticker,
		Name:      firstNonEmpty(c.Name, c.Symbol, ticker),
		Market:    provider.MarketUS,
		Sector:    c.Sector,
		Industry:  c.Industry,
		MarketCap: c.MarketCap,
		Currency:  firstNonEmpty(c.Currency, defaultUSCurrency),
	}
	return Snapshot(info, bars, usPricePlaces), nil
}

// krSnapshot leaves Name as the ticker; the listing lookup fills it in.
func krSnapshot(ticker string, c *provider.Chart) (*provider.QuoteSnapshot, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil chart", provider.ErrNoData)
	}
	bars := NormalizeBars(c.Bars, krPricePlaces)
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no usable bars for %s", provider.ErrNoData, ticker)
	}
	info := provider.StockInfo{
		Ticker:    ticker,
		Name:      ticker,
		Market:    provider.MarketKR,
		Sector:    c.Sector,
		Industry:  c.Industry,
		MarketCap: c.MarketCap,
		Currency:  krCurrency,
	}
	return Snapshot(info, bars, krPricePlaces), nil
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
