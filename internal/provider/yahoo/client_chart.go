package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"marketdata/internal/provider"
)

// ChartMeta is the subset of chart metadata the adapters read.
type ChartMeta struct {
	Currency           string   `json:"currency"`
	Symbol             string   `json:"symbol"`
	ShortName          string   `json:"shortName"`
	LongName           string   `json:"longName"`
	ExchangeName       string   `json:"exchangeName"`
	InstrumentType     string   `json:"instrumentType"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
}

// ChartQuote holds the OHLCV columns; nulls decode to nil.
type ChartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// ChartResult is one entry of chart.result.
type ChartResult struct {
	Meta       ChartMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"`
	Indicators struct {
		Quote []ChartQuote `json:"quote"`
	} `json:"indicators"`
}

// Quote returns the first quote block, or an empty one.
func (r *ChartResult) Quote() ChartQuote {
	if len(r.Indicators.Quote) == 0 {
		return ChartQuote{}
	}
	return r.Indicators.Quote[0]
}

type apiErrorBody struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *apiErrorBody `json:"error"`
	} `json:"chart"`
}

// Chart fetches /v8/finance/chart/{symbol} for the given range and interval.
func (c *Client) Chart(ctx context.Context, symbol, rng, interval string) (*ChartResult, error) {
	query := url.Values{}
	query.Set("range", rng)
	query.Set("interval", interval)

	u := c.endpoint("/v8/finance/chart/"+url.PathEscape(symbol), query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading chart response: %w", err)
	}

	var decoded chartResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if res.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: res.StatusCode}
		if decodeErr == nil && decoded.Chart.Error != nil {
			apiErr.Code = decoded.Chart.Error.Code
			apiErr.Description = decoded.Chart.Error.Description
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decoding chart response: %v", provider.ErrMalformed, decodeErr)
	}
	if decoded.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", provider.ErrNoData, decoded.Chart.Error.Code, decoded.Chart.Error.Description)
	}
	if len(decoded.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: no chart result for %s", provider.ErrNoData, symbol)
	}
	return &decoded.Chart.Result[0], nil
}
