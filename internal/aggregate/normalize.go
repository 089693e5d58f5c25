package aggregate

import (
    "math"
    "sort"

    "marketdata/internal/indicator"
    "marketdata/internal/provider"
)

const dateLayout = "2006-01-02"

// NormalizeBars turns raw upstream bars into canonical ones.
// Rules:
// - bars with a missing, zero or non-finite close are dropped (non-trading placeholders)
// - dates are the UTC calendar day of the bar time
// - duplicate dates collapse to one bar; for equal dates, later input wins
// - prices are rounded to places decimals, volume to a whole number
// - output is ascending by date
func NormalizeBars(raw []provider.RawBar, places int32) []provider.Bar {
    byDate := make(map[string]provider.Bar, len(raw))

    for _, rb := range raw {
        if rb.Close == 0 || math.IsNaN(rb.Close) || math.IsInf(rb.Close, 0) { continue }
        date := rb.Time.UTC().Format(dateLayout)
        byDate[date] = provider.Bar{
            Date:   date,
            Open:   price(rb.Open, places),
            High:   price(rb.High, places),
            Low:    price(rb.Low, places),
            Close:  price(rb.Close, places),
            Volume: volume(rb.Volume),
        }
    }

    out := make([]provider.Bar, 0, len(byDate))
    for _, b := range byDate { out = append(out, b) }
    sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
    return out
}

func price(v float64, places int32) float64 {
    if math.IsNaN(v) || math.IsInf(v, 0) { return 0 }
    return indicator.Round(v, places)
}

func volume(v float64) int64 {
    if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 { return 0 }
    return int64(math.Round(v))
}

// Snapshot derives the price summary from ascending bars. bars must be non-empty.
// change is rounded to places; changePercent is always rounded to 2.
func Snapshot(info provider.StockInfo, bars []provider.Bar, places int32) *provider.QuoteSnapshot {
    last := bars[len(bars)-1].Close
    prev := last
    if len(bars) >= 2 { prev = bars[len(bars)-2].Close }

    change := indicator.Round(last-prev, places)
    pct := 0.0
    if prev != 0 { pct = indicator.Round(change/prev*100, 2) }

    return &provider.QuoteSnapshot{
        Info:          info,
        OHLCV:         bars,
        CurrentPrice:  last,
        Change:        change,
        ChangePercent: pct,
    }
}
