package aggregate

import (
	"context"
	"fmt"
	"time"

	"marketdata/internal/provider"
)

// configurable is implemented by sources that need a credential.
type configurable interface {
	Configured() bool
}

// ExchangeRate returns USD/KRW from the first rate source that answers.
// Sources reporting themselves unconfigured are left out of the chain.
func (s *Service) ExchangeRate(ctx context.Context) (*provider.ExchangeRate, error) {
	return load(ctx, s, KeyExchangeRate, func(ctx context.Context) (*provider.ExchangeRate, time.Duration, error) {
		steps := make([]step[*provider.ExchangeRate], 0, len(s.src.Rates))
		for _, src := range s.src.Rates {
			if c, ok := src.(configurable); ok && !c.Configured() {
				continue
			}
			steps = append(steps, step[*provider.ExchangeRate]{
				source: src.Name(),
				call: func(ctx context.Context) (*provider.ExchangeRate, error) {
					q, err := src.FetchUSDKRW(ctx)
					if err != nil {
						return nil, err
					}
					if q == nil || q.Rate <= 0 {
						return nil, fmt.Errorf("%w: no rate", provider.ErrNoData)
					}
					return &provider.ExchangeRate{
						USDKRW:    q.Rate,
						UpdatedAt: s.now().UTC(),
						Source:    q.Source,
					}, nil
				},
			})
		}
		r, err := runChain(ctx, s.log, s.timeout, DomainExchange, "usd_krw", steps)
		return r, TTLExchangeRate, err
	})
}
