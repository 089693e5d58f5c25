package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"marketdata/internal/provider"
)

// SummaryModules are the quoteSummary modules requested by default.
var SummaryModules = []string{
	"assetProfile",
	"defaultKeyStatistics",
	"financialData",
	"summaryDetail",
	"price",
}

// Module is one quoteSummary module, keyed by field name.
type Module map[string]json.RawMessage

// Raw returns the numeric value of a field. Yahoo wraps most numbers as
// {"raw": 1.2, "fmt": "1.20"}; bare numbers are accepted as well. Empty
// objects, nulls and strings yield nil.
func (m Module) Raw(key string) *float64 {
	msg, ok := m[key]
	if !ok || len(msg) == 0 {
		return nil
	}

	var wrapped struct {
		Raw *float64 `json:"raw"`
	}
	if err := json.Unmarshal(msg, &wrapped); err == nil {
		return wrapped.Raw
	}

	var bare float64
	if err := json.Unmarshal(msg, &bare); err == nil {
		return &bare
	}
	return nil
}

// String returns a string field, or nil when absent or not a string.
func (m Module) String(key string) *string {
	msg, ok := m[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil || s == "" {
		return nil
	}
	return &s
}

// Summary is a decoded quoteSummary result.
type Summary struct {
	AssetProfile         Module `json:"assetProfile"`
	DefaultKeyStatistics Module `json:"defaultKeyStatistics"`
	FinancialData        Module `json:"financialData"`
	SummaryDetail        Module `json:"summaryDetail"`
	Price                Module `json:"price"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []Summary     `json:"result"`
		Error  *apiErrorBody `json:"error"`
	} `json:"quoteSummary"`
}

// QuoteSummary fetches /v10/finance/quoteSummary/{symbol}. When modules is
// empty, SummaryModules is requested.
func (c *Client) QuoteSummary(ctx context.Context, symbol string, modules ...string) (*Summary, error) {
	if len(modules) == 0 {
		modules = SummaryModules
	}
	query := url.Values{}
	query.Set("modules", strings.Join(modules, ","))

	u := c.endpoint("/v10/finance/quoteSummary/"+url.PathEscape(symbol), query)
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
		return nil, fmt.Errorf("reading quote summary response: %w", err)
	}

	var decoded quoteSummaryResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if res.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: res.StatusCode}
		if decodeErr == nil && decoded.QuoteSummary.Error != nil {
			apiErr.Code = decoded.QuoteSummary.Error.Code
			apiErr.Description = decoded.QuoteSummary.Error.Description
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decoding quote summary response: %v", provider.ErrMalformed, decodeErr)
	}
	if decoded.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", provider.ErrNoData, decoded.QuoteSummary.Error.Code, decoded.QuoteSummary.Error.Description)
	}
	if len(decoded.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: no quote summary for %s", provider.ErrNoData, symbol)
	}
	return &decoded.QuoteSummary.Result[0], nil
}
