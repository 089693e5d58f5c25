package yahooadapter

import (
	"context"
	"fmt"

	"marketdata/internal/indicator"
	"marketdata/internal/provider"
	"marketdata/internal/provider/yahoo"
)

// Rates is the fallback USD/KRW source: the last close of the KRW=X pair.
type Rates struct {
	name   string
	client *yahoo.Client
}

func NewRates(client *yahoo.Client) *Rates {
	return &Rates{name: "yahoo.fx", client: client}
}

func (r *Rates) Name() string { return r.name }

func (r *Rates) FetchUSDKRW(ctx context.Context) (*provider.RateQuote, error) {
	res, err := r.client.Chart(ctx, FXSymbol, string(provider.Period5d), dailyInterval)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}
	rate, ok := lastClose(res)
	if !ok {
		return nil, fmt.Errorf("%s: %w: no close for %s", r.name, provider.ErrNoData, FXSymbol)
	}
	return &provider.RateQuote{
		Rate:   indicator.Round(rate, indicator.PricePlaces),
		Source: provider.RateSourceYahoo,
	}, nil
}
