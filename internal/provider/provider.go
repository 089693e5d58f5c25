package provider

import (
	"context"
	"strings"
	"time"
)

// Market identifies the equities venue a ticker belongs to.
type Market string

const (
	MarketUS Market = "us"
	MarketKR Market = "kr"
)

// ParseMarket accepts "us" or "kr" in any case.
func ParseMarket(s string) (Market, bool) {
	switch Market(strings.ToLower(strings.TrimSpace(s))) {
	case MarketUS:
		return MarketUS, true
	case MarketKR:
		return MarketKR, true
	}
	return "", false
}

// Period is a chart range understood by every bar source.
type Period string

const (
	Period1d  Period = "1d"
	Period5d  Period = "5d"
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period2y  Period = "2y"
	Period5y  Period = "5y"

	DefaultPeriod = Period6mo
)

var periodDays = map[Period]int{
	Period1d:  1,
	Period5d:  5,
	Period1mo: 30,
	Period3mo: 90,
	Period6mo: 180,
	Period1y:  365,
	Period2y:  730,
	Period5y:  1825,
}

// ParsePeriod normalizes s; unknown values fall back to DefaultPeriod.
func ParsePeriod(s string) Period {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := periodDays[p]; ok {
		return p
	}
	return DefaultPeriod
}

// Days is the calendar span of the period.
func (p Period) Days() int {
	if d, ok := periodDays[p]; ok {
		return d
	}
	return periodDays[DefaultPeriod]
}

// Intraday reports whether the period is short enough to be quote-like (1d/5d).
func (p Period) Intraday() bool { return p == Period1d || p == Period5d }

// RawBar is one upstream bar before normalization. Zero means missing.
type RawBar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Chart is the adapter-neutral intermediate shape every BarSource returns.
type Chart struct {
	Symbol    string
	Name      string
	Currency  string
	Sector    *string
	Industry  *string
	MarketCap *float64
	Bars      []RawBar
}

// Bar is a normalized OHLCV bar.
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// StockInfo describes the instrument behind a QuoteSnapshot.
type StockInfo struct {
	Ticker    string   `json:"ticker"`
	Name      string   `json:"name"`
	Market    Market   `json:"market"`
	Sector    *string  `json:"sector"`
	Industry  *string  `json:"industry"`
	MarketCap *float64 `json:"marketCap"`
	Currency  string   `json:"currency"`
}

// QuoteSnapshot is the canonical equities record.
type QuoteSnapshot struct {
	Info          StockInfo `json:"info"`
	OHLCV         []Bar     `json:"ohlcv"`
	CurrentPrice  float64   `json:"currentPrice"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
}

// Closes returns the close column in bar order.
func (q *QuoteSnapshot) Closes() []float64 {
	out := make([]float64, len(q.OHLCV))
	for i, b := range q.OHLCV {
		out[i] = b.Close
	}
	return out
}

// RateSourceKind records which path produced an exchange rate.
type RateSourceKind string

const (
	// RateSourceBOK is the primary authority (Bank of Korea).
	RateSourceBOK RateSourceKind = "bok"
	// RateSourceYahoo is the fallback market-data provider.
	RateSourceYahoo RateSourceKind = "yfinance"
)

// RateQuote is what a RateSource hands back before caching.
type RateQuote struct {
	Rate   float64
	Source RateSourceKind
}

// ExchangeRate is the canonical USD/KRW record.
type ExchangeRate struct {
	USDKRW    float64        `json:"usdKrw"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Source    RateSourceKind `json:"source"`
}

// Fundamentals is a flat set of valuation ratios, each optional.
type Fundamentals struct {
	Ticker         string   `json:"ticker"`
	PE             *float64 `json:"pe"`
	ForwardPE      *float64 `json:"forwardPe"`
	PB             *float64 `json:"pb"`
	PS             *float64 `json:"ps"`
	ROE            *float64 `json:"roe"`
	RevenueGrowth  *float64 `json:"revenueGrowth"`
	EarningsGrowth *float64 `json:"earningsGrowth"`
	DividendYield  *float64 `json:"dividendYield"`
	DebtToEquity   *float64 `json:"debtToEquity"`
	FreeCashFlow   *float64 `json:"freeCashFlow"`
	MarketCap      *float64 `json:"marketCap"`
}

// Populated reports whether any ratio field carries a value.
func (f *Fundamentals) Populated() bool {
	for _, v := range []*float64{
		f.PE, f.ForwardPE, f.PB, f.PS, f.ROE, f.RevenueGrowth,
		f.EarningsGrowth, f.DividendYield, f.DebtToEquity, f.FreeCashFlow, f.MarketCap,
	} {
		if v != nil {
			return true
		}
	}
	return false
}

// IndicatorSnapshot holds derived indicators; nil means not enough history.
type IndicatorSnapshot struct {
	RSI14         *float64 `json:"rsi14"`
	MACDValue     *float64 `json:"macd_value"`
	MACDSignal    *float64 `json:"macd_signal"`
	MACDHistogram *float64 `json:"macd_histogram"`
	BBUpper       *float64 `json:"bb_upper"`
	BBMiddle      *float64 `json:"bb_middle"`
	BBLower       *float64 `json:"bb_lower"`
	SMA20         *float64 `json:"sma20"`
	SMA50         *float64 `json:"sma50"`
	SMA200        *float64 `json:"sma200"`
}

// IndexValue is the last close of an index and its change from the prior close.
type IndexValue struct {
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

// MarketOverview aggregates headline indices and the FX rate.
type MarketOverview struct {
	SP500     IndexValue `json:"sp500"`
	Nasdaq    IndexValue `json:"nasdaq"`
	KOSPI     IndexValue `json:"kospi"`
	KOSDAQ    IndexValue `json:"kosdaq"`
	VIX       float64    `json:"vix"`
	USDKRW    float64    `json:"usdKrw"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// BarSource returns chart data for a symbol.
//
//go:generate mockgen -package=aggregate_test -destination=../aggregate/mock_provider_test.go -source=provider.go
type BarSource interface {
	Name() string
	FetchChart(ctx context.Context, symbol string, period Period) (*Chart, error)
}

// RateSource returns the current USD/KRW rate.
type RateSource interface {
	Name() string
	FetchUSDKRW(ctx context.Context) (*RateQuote, error)
}

// FundamentalsSource returns valuation ratios for a symbol.
type FundamentalsSource interface {
	Name() string
	FetchFundamentals(ctx context.Context, symbol string) (*Fundamentals, error)
}

// ListingSource returns a code -> company name table.
type ListingSource interface {
	Name() string
	FetchListing(ctx context.Context) (map[string]string, error)
}
