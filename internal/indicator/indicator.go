// Package indicator computes technical indicators over an ascending series
// of closing prices. Every function reports "not enough history" as an
// absent value (nil or ok=false), never as zero.
package indicator

import (
	"math"

	"github.com/shopspring/decimal"

	"marketdata/internal/provider"
)

const (
	// IndicatorPlaces is the rounding applied to indicator outputs.
	IndicatorPlaces = 4
	// RSIPlaces is the rounding applied to RSI.
	RSIPlaces = 2
	// PricePlaces is the rounding applied to price-like quantities.
	PricePlaces = 2

	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
	// MACDMinHistory is the slow EMA window plus the signal window.
	MACDMinHistory = MACDSlow + MACDSignal

	RSIPeriod       = 14
	BollingerPeriod = 20
	BollingerWidth  = 2.0
)

// Round rounds half away from zero to places decimals. NaN and Inf pass through.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// SMA is the arithmetic mean of the last n closes.
func SMA(closes []float64, n int) (float64, bool) {
	if n <= 0 || len(closes) < n {
		return 0, false
	}
	sum := 0.0
	for _, c := range closes[len(closes)-n:] {
		sum += c
	}
	return sum / float64(n), true
}

// EMA returns the exponential moving average series with k = 2/(n+1).
// The series is seeded with the first close rather than an SMA warm-up,
// so early values lean toward the start of the input.
func EMA(closes []float64, n int) []float64 {
	if len(closes) == 0 {
		return nil
	}
	k := 2.0 / float64(n+1)
	out := make([]float64, len(closes))
	out[0] = closes[0]
	for i := 1; i < len(closes); i++ {
		out[i] = closes[i]*k + out[i-1]*(1-k)
	}
	return out
}

// RSI computes Wilder's RSI. Needs at least period+1 closes.
// A window with no losses yields exactly 100.
func RSI(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period+1 {
		return 0, false
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss := split(closes[i] - closes[i-1])
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		gain, loss := split(closes[i] - closes[i-1])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

func split(diff float64) (gain, loss float64) {
	if diff > 0 {
		return diff, 0
	}
	return 0, -diff
}

// MACDResult is the last point of the MACD line, its signal and histogram.
type MACDResult struct {
	Value     float64
	Signal    float64
	Histogram float64
}

// MACD computes EMA(12)-EMA(26), its EMA(9) signal and the histogram,
// rounded to IndicatorPlaces. Needs at least MACDMinHistory closes.
func MACD(closes []float64) (MACDResult, bool) {
	if len(closes) < MACDMinHistory {
		return MACDResult{}, false
	}
	fast := EMA(closes, MACDFast)
	slow := EMA(closes, MACDSlow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}
	signal := EMA(line, MACDSignal)

	value := Round(line[len(line)-1], IndicatorPlaces)
	sig := Round(signal[len(signal)-1], IndicatorPlaces)
	return MACDResult{
		Value:     value,
		Signal:    sig,
		Histogram: Round(value-sig, IndicatorPlaces),
	}, true
}

// Bands is a Bollinger band triple.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// Bollinger computes middle = SMA(period) and middle ± width×σ using the
// population standard deviation of the trailing window.
func Bollinger(closes []float64, period int, width float64) (Bands, bool) {
	middle, ok := SMA(closes, period)
	if !ok {
		return Bands{}, false
	}
	var sq float64
	for _, c := range closes[len(closes)-period:] {
		d := c - middle
		sq += d * d
	}
	std := math.Sqrt(sq / float64(period))
	return Bands{
		Upper:  Round(middle+width*std, IndicatorPlaces),
		Middle: Round(middle, IndicatorPlaces),
		Lower:  Round(middle-width*std, IndicatorPlaces),
	}, true
}

// Compute builds the full snapshot from closes.
func Compute(closes []float64) provider.IndicatorSnapshot {
	var s provider.IndicatorSnapshot

	if v, ok := RSI(closes, RSIPeriod); ok {
		s.RSI14 = ptr(Round(v, RSIPlaces))
	}
	if m, ok := MACD(closes); ok {
		s.MACDValue = ptr(m.Value)
		s.MACDSignal = ptr(m.Signal)
		s.MACDHistogram = ptr(m.Histogram)
	}
	if b, ok := Bollinger(closes, BollingerPeriod, BollingerWidth); ok {
		s.BBUpper = ptr(b.Upper)
		s.BBMiddle = ptr(b.Middle)
		s.BBLower = ptr(b.Lower)
	}
	s.SMA20 = smaPtr(closes, 20)
	s.SMA50 = smaPtr(closes, 50)
	s.SMA200 = smaPtr(closes, 200)
	return s
}

func smaPtr(closes []float64, n int) *float64 {
	v, ok := SMA(closes, n)
	if !ok {
		return nil
	}
	return ptr(Round(v, IndicatorPlaces))
}

func ptr(v float64) *float64 { return &v }
