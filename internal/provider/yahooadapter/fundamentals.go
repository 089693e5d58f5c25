package yahooadapter

import (
	"context"
	"fmt"

	"marketdata/internal/provider"
	"marketdata/internal/provider/yahoo"
)

// Fundamentals is a provider.FundamentalsSource over the quote-summary endpoint.
type Fundamentals struct {
	cfg    Config
	client *yahoo.Client
}

func NewFundamentals(cfg Config, client *yahoo.Client) *Fundamentals {
	return &Fundamentals{cfg: cfg.withDefaults(), client: client}
}

func (f *Fundamentals) Name() string { return f.cfg.Name }

func (f *Fundamentals) FetchFundamentals(ctx context.Context, ticker string) (*provider.Fundamentals, error) {
	sym := ticker + f.cfg.Suffix
	s, err := f.client.QuoteSummary(ctx, sym)
	if err != nil {
		return nil, fmt.Errorf("%s quote summary %s: %w", f.cfg.Name, sym, err)
	}
	return ToFundamentals(ticker, s), nil
}

// ToFundamentals flattens the valuation modules. forwardPE prefers key
// statistics over summary detail.
func ToFundamentals(ticker string, s *yahoo.Summary) *provider.Fundamentals {
	return &provider.Fundamentals{
		Ticker:         ticker,
		PE:             s.SummaryDetail.Raw("trailingPE"),
		ForwardPE:      first(s.DefaultKeyStatistics.Raw("forwardPE"), s.SummaryDetail.Raw("forwardPE")),
		PB:             s.DefaultKeyStatistics.Raw("priceToBook"),
		PS:             s.SummaryDetail.Raw("priceToSalesTrailing12Months"),
		ROE:            s.FinancialData.Raw("returnOnEquity"),
		RevenueGrowth:  s.FinancialData.Raw("revenueGrowth"),
		EarningsGrowth: s.FinancialData.Raw("earningsGrowth"),
		DividendYield:  s.SummaryDetail.Raw("dividendYield"),
		DebtToEquity:   s.FinancialData.Raw("debtToEquity"),
		FreeCashFlow:   s.FinancialData.Raw("freeCashflow"),
		MarketCap:      first(s.Price.Raw("marketCap"), s.SummaryDetail.Raw("marketCap")),
	}
}

func first(vs ...*float64) *float64 {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}
