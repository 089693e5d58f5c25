package aggregate

import (
	"errors"
	"fmt"
	"strings"

	"marketdata/internal/provider"
)

var (
	// ErrInvalidTicker is returned for tickers no upstream could accept.
	ErrInvalidTicker = errors.New("invalid ticker")
	// ErrInvalidMarket is returned for markets other than us and kr.
	ErrInvalidMarket = errors.New("invalid market")
)

const maxTickerLen = 15

// NormalizeTicker trims and upper-cases t and rejects characters outside
// letters, digits and ". - ^ =". KR tickers lose a trailing .KS or .KQ, since
// the sources add the exchange suffix themselves.
func NormalizeTicker(m provider.Market, t string) (string, error) {
	if m != provider.MarketUS && m != provider.MarketKR {
		return "", fmt.Errorf("%w: %q", ErrInvalidMarket, m)
	}
	t = strings.ToUpper(strings.TrimSpace(t))
	if m == provider.MarketKR {
		t = strings.TrimSuffix(strings.TrimSuffix(t, ".KS"), ".KQ")
	}
	if t == "" || len(t) > maxTickerLen {
		return "", fmt.Errorf("%w: %q", ErrInvalidTicker, t)
	}
	for _, r := range t {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '^' || r == '=':
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidTicker, t)
		}
	}
	return t, nil
}
