package aggregate

import (
	"fmt"
	"time"

	"marketdata/internal/provider"
)

// Cache lifetimes per record kind.
const (
	TTLIntraday          = 300 * time.Second
	TTLDaily             = 3600 * time.Second
	TTLExchangeRate      = 600 * time.Second
	TTLFundamentals      = 3600 * time.Second
	TTLFundamentalsEmpty = 60 * time.Second
	TTLListing           = 86400 * time.Second
	TTLIndicators        = 300 * time.Second
	TTLOverview          = 300 * time.Second
)

// Domain names double as cache key prefixes and log fields.
const (
	DomainUSStock      = "us_stock"
	DomainKRStock      = "kr_stock"
	DomainExchange     = "fx"
	DomainFundamentals = "fundamentals"
	DomainIndicators   = "indicators"
	DomainOverview     = "market"
	DomainListing      = "listing"
)

const (
	KeyExchangeRate = DomainExchange + ":usd_krw"
	KeyOverview     = DomainOverview + ":overview"
	KeyListingKRX   = DomainListing + ":krx"
)

// IndicatorPeriod is the history the indicator snapshot is computed over.
const IndicatorPeriod = provider.Period1y

// StockKey is "{domain}:{ticker}:{period}".
func StockKey(m provider.Market, ticker string, p provider.Period) string {
	return fmt.Sprintf("%s:%s:%s", stockDomain(m), ticker, p)
}

// FundamentalsKey is "fundamentals:{market}:{ticker}".
func FundamentalsKey(m provider.Market, ticker string) string {
	return fmt.Sprintf("%s:%s:%s", DomainFundamentals, m, ticker)
}

// IndicatorsKey is "indicators:{market}:{ticker}:1y".
func IndicatorsKey(m provider.Market, ticker string) string {
	return fmt.Sprintf("%s:%s:%s:%s", DomainIndicators, m, ticker, IndicatorPeriod)
}

// StockTTL is the lifetime for an equities record of period p.
func StockTTL(p provider.Period) time.Duration {
	if p.Intraday() {
		return TTLIntraday
	}
	return TTLDaily
}

func stockDomain(m provider.Market) string {
	if m == provider.MarketKR {
		return DomainKRStock
	}
	return DomainUSStock
}
