package aggregate

import (
	"context"
	"time"

	"marketdata/internal/indicator"
	"marketdata/internal/provider"
)

// Indicators computes the indicator snapshot over the one-year equities
// record, which is itself served through the equities cache.
func (s *Service) Indicators(ctx context.Context, market provider.Market, ticker string) (*provider.IndicatorSnapshot, error) {
	ticker, err := NormalizeTicker(market, ticker)
	if err != nil {
		return nil, err
	}
	return load(ctx, s, IndicatorsKey(market, ticker), func(ctx context.Context) (*provider.IndicatorSnapshot, time.Duration, error) {
		q, err := s.Stock(ctx, market, ticker, IndicatorPeriod)
		if err != nil {
			return nil, 0, err
		}
		snap := indicator.Compute(q.Closes())
		return &snap, TTLIndicators, nil
	})
}
