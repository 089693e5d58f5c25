package aggregate

import (
	"context"
	"fmt"
	"time"

	"marketdata/internal/provider"
)

// Fundamentals returns valuation ratios for ticker. It is best effort: an
// exhausted chain yields an empty record, cached briefly so a transient
// upstream block is retried soon.
func (s *Service) Fundamentals(ctx context.Context, market provider.Market, ticker string) (*provider.Fundamentals, error) {
	ticker, err := NormalizeTicker(market, ticker)
	if err != nil {
		return nil, err
	}
	sources := s.src.USFundamentals
	if market == provider.MarketKR {
		sources = s.src.KRFundamentals
	}

	return load(ctx, s, FundamentalsKey(market, ticker), func(ctx context.Context) (*provider.Fundamentals, time.Duration, error) {
		steps := make([]step[*provider.Fundamentals], 0, len(sources))
		for _, src := range sources {
			steps = append(steps, step[*provider.Fundamentals]{
				source: src.Name(),
				call: func(ctx context.Context) (*provider.Fundamentals, error) {
					f, err := src.FetchFundamentals(ctx, ticker)
					if err != nil {
						return nil, err
					}
					if f == nil || !f.Populated() {
						return nil, fmt.Errorf("%w: no ratios", provider.ErrNoData)
					}
					return f, nil
				},
			})
		}

		f, err := runChain(ctx, s.log, s.timeout, DomainFundamentals, string(market)+":"+ticker, steps)
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, err
			}
			f = &provider.Fundamentals{}
		}
		f.Ticker = ticker
		if f.Populated() {
			return f, TTLFundamentals, nil
		}
		return f, TTLFundamentalsEmpty, nil
	})
}
