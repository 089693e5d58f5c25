package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"marketdata/internal/provider"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			MarginBottom(1)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Width(16)

	upStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// recentBars is how many trailing bars the stock view lists.
const recentBars = 5

func renderQuote(q *provider.QuoteSnapshot) string {
	places := 2
	if q.Info.Market == provider.MarketKR {
		places = 0
	}
	rows := []string{
		row("Price", num(q.CurrentPrice, places)+" "+q.Info.Currency),
		row("Change", signed(q.Change, places, fmt.Sprintf("(%s%%)", num(q.ChangePercent, 2)))),
	}
	if q.Info.Sector != nil {
		rows = append(rows, row("Sector", *q.Info.Sector))
	}
	if q.Info.Industry != nil {
		rows = append(rows, row("Industry", *q.Info.Industry))
	}
	if q.Info.MarketCap != nil {
		rows = append(rows, row("Market cap", num(*q.Info.MarketCap, 0)))
	}
	rows = append(rows, row("Bars", strconv.Itoa(len(q.OHLCV))))

	start := max(0, len(q.OHLCV)-recentBars)
	for _, b := range q.OHLCV[start:] {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("%s  O %s  H %s  L %s  C %s  V %d",
			b.Date, num(b.Open, places), num(b.High, places), num(b.Low, places), num(b.Close, places), b.Volume)))
	}

	title := fmt.Sprintf("%s · %s (%s)", q.Info.Ticker, q.Info.Name, strings.ToUpper(string(q.Info.Market)))
	return view(title, rows)
}

func renderRate(r *provider.ExchangeRate) string {
	return view("USD/KRW", []string{
		row("Rate", num(r.USDKRW, 2)),
		row("Source", string(r.Source)),
		row("Updated", r.UpdatedAt.Format(time.RFC3339)),
	})
}

func renderFundamentals(f *provider.Fundamentals) string {
	if !f.Populated() {
		return view(f.Ticker+" fundamentals", []string{mutedStyle.Render("no ratios available right now")})
	}
	return view(f.Ticker+" fundamentals", []string{
		row("P/E", opt(f.PE, 2)),
		row("Forward P/E", opt(f.ForwardPE, 2)),
		row("P/B", opt(f.PB, 2)),
		row("P/S", opt(f.PS, 2)),
		row("ROE", opt(f.ROE, 4)),
		row("Revenue growth", opt(f.RevenueGrowth, 4)),
		row("EPS growth", opt(f.EarningsGrowth, 4)),
		row("Dividend yield", opt(f.DividendYield, 4)),
		row("Debt/equity", opt(f.DebtToEquity, 2)),
		row("Free cash flow", opt(f.FreeCashFlow, 0)),
		row("Market cap", opt(f.MarketCap, 0)),
	})
}

func renderIndicators(ticker string, s *provider.IndicatorSnapshot) string {
	return view(ticker+" indicators (1y)", []string{
		row("RSI 14", opt(s.RSI14, 2)),
		row("MACD", opt(s.MACDValue, 4)),
		row("MACD signal", opt(s.MACDSignal, 4)),
		row("MACD hist", opt(s.MACDHistogram, 4)),
		row("BB upper", opt(s.BBUpper, 4)),
		row("BB middle", opt(s.BBMiddle, 4)),
		row("BB lower", opt(s.BBLower, 4)),
		row("SMA 20", opt(s.SMA20, 4)),
		row("SMA 50", opt(s.SMA50, 4)),
		row("SMA 200", opt(s.SMA200, 4)),
	})
}

func renderOverview(o *provider.MarketOverview) string {
	index := func(v provider.IndexValue) string {
		if v.Value == 0 {
			return mutedStyle.Render("n/a")
		}
		return num(v.Value, 2) + "  " + signed(v.Change, 2, "")
	}
	return view("Market overview", []string{
		row("S&P 500", index(o.SP500)),
		row("NASDAQ", index(o.Nasdaq)),
		row("KOSPI", index(o.KOSPI)),
		row("KOSDAQ", index(o.KOSDAQ)),
		row("VIX", num(o.VIX, 2)),
		row("USD/KRW", num(o.USDKRW, 2)),
		row("Updated", o.UpdatedAt.Format(time.RFC3339)),
	})
}

func renderListing(names map[string]string) string {
	rows := make([]string, 0, len(names))
	for _, code := range sortedCodes(names) {
		rows = append(rows, row(code, names[code]))
	}
	if len(rows) == 0 {
		rows = append(rows, mutedStyle.Render("no matching codes"))
	}
	return view(fmt.Sprintf("KRX listing (%d)", len(names)), rows)
}

func view(title string, rows []string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		boxStyle.Render(strings.Join(rows, "\n")),
	)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func num(v float64, places int) string { return strconv.FormatFloat(v, 'f', places, 64) }

func opt(v *float64, places int) string {
	if v == nil {
		return mutedStyle.Render("n/a")
	}
	return num(*v, places)
}

func signed(v float64, places int, suffix string) string {
	s := num(v, places)
	if v > 0 {
		s = "+" + s
	}
	if suffix != "" {
		s += " " + suffix
	}
	switch {
	case v > 0:
		return upStyle.Render(s)
	case v < 0:
		return downStyle.Render(s)
	}
	return s
}
