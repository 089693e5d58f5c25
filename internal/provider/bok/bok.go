// Package bok reads the USD/KRW base rate from the Bank of Korea ECOS
// StatisticSearch API. It is the authoritative FX source and is only put
// into a chain when an API key is configured.
package bok

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "sort"
    "strconv"
    "strings"
    "time"

    "marketdata/internal/httpx"
    "marketdata/internal/provider"
)

const (
    DefaultEndpoint = "https://ecos.bok.or.kr/api/StatisticSearch"
    // StatCode is the daily exchange rate table; ItemCode is the won/dollar base rate.
    StatCode = "731Y001"
    ItemCode = "0000001"

    // codeNoData is the RESULT code ECOS uses for an empty query.
    codeNoData = "INFO-200"
)

// ErrNoKey is returned when the source is used without an API key.
var ErrNoKey = errors.New("bok: api key not configured")

type Config struct {
    Name     string // display name, default: bok
    APIKey   string
    Endpoint string // default: DefaultEndpoint
    // LookbackDays is the query window ending today; holidays and weekends
    // have no rows, so the latest row in the window wins. Default 7.
    LookbackDays int
    // Location is the calendar the query dates are computed in. Default Asia/Seoul, else UTC.
    Location *time.Location
}

type Provider struct {
    cfg    Config
    client *httpx.Client
    now    func() time.Time
}

func New(cfg Config, hc *httpx.Client) *Provider {
    if cfg.Name == "" { cfg.Name = "bok" }
    if cfg.Endpoint == "" { cfg.Endpoint = DefaultEndpoint }
    cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
    if cfg.LookbackDays <= 0 { cfg.LookbackDays = 7 }
    if cfg.Location == nil {
        if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
            cfg.Location = loc
        } else {
            cfg.Location = time.UTC
        }
    }
    return &Provider{cfg: cfg, client: hc, now: time.Now}
}

// WithClock returns a copy of p that reads time from now.
func (p *Provider) WithClock(now func() time.Time) *Provider {
    cp := *p
    cp.now = now
    return &cp
}

func (p *Provider) Name() string { return p.cfg.Name }

// Configured reports whether an API key is set.
func (p *Provider) Configured() bool { return p.cfg.APIKey != "" }

func (p *Provider) FetchUSDKRW(ctx context.Context) (*provider.RateQuote, error) {
    if !p.Configured() { return nil, ErrNoKey }

    end := p.now().In(p.cfg.Location)
    start := end.AddDate(0, 0, -p.cfg.LookbackDays)
    u := p.queryURL(start.Format("20060102"), end.Format("20060102"))

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
    if err != nil { return nil, fmt.Errorf("creating request: %w", err) }
    req.Header.Set("Accept", "application/json")

    resp, err := p.client.Do(req)
    if err != nil { return nil, fmt.Errorf("bok: performing request: %w", err) }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
        return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
    }

    var api apiResponse
    if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
        return nil, fmt.Errorf("%w: bok: decode: %v", provider.ErrMalformed, err)
    }
    if api.Result != nil {
        if api.Result.Code == codeNoData {
            return nil, fmt.Errorf("%w: bok: %s", provider.ErrNoData, api.Result.Message)
        }
        return nil, fmt.Errorf("bok: %s: %s", api.Result.Code, api.Result.Message)
    }
    if api.StatisticSearch == nil || len(api.StatisticSearch.Rows) == 0 {
        return nil, fmt.Errorf("%w: bok: no rows between %s and %s", provider.ErrNoData, start.Format("20060102"), end.Format("20060102"))
    }

    row, err := latest(api.StatisticSearch.Rows)
    if err != nil { return nil, err }
    return &provider.RateQuote{Rate: row.value, Source: provider.RateSourceBOK}, nil
}

func (p *Provider) queryURL(start, end string) string {
    // {endpoint}/{key}/json/kr/{from}/{to}/{stat}/D/{start}/{end}/{item}
    return strings.Join([]string{
        p.cfg.Endpoint,
        url.PathEscape(p.cfg.APIKey),
        "json", "kr", "1", "10",
        StatCode, "D", start, end, ItemCode,
    }, "/")
}

// StatusError is a non-2xx reply from ECOS.
type StatusError struct {
    StatusCode int
    Body       string
}

func (e *StatusError) Error() string {
    return fmt.Sprintf("bok: status %d: %s", e.StatusCode, e.Body)
}

// HTTPStatus is the upstream status code.
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

type apiResponse struct {
    StatisticSearch *struct {
        ListTotalCount int   `json:"list_total_count"`
        Rows           []row `json:"row"`
    } `json:"StatisticSearch"`
    Result *struct {
        Code    string `json:"CODE"`
        Message string `json:"MESSAGE"`
    } `json:"RESULT"`
}

type row struct {
    StatCode  string `json:"STAT_CODE"`
    ItemCode  string `json:"ITEM_CODE1"`
    Time      string `json:"TIME"`
    DataValue string `json:"DATA_VALUE"`
}

type parsedRow struct {
    time  string
    value float64
}

// latest picks the most recent parsable row. TIME is YYYYMMDD so it sorts lexically.
func latest(rows []row) (parsedRow, error) {
    parsed := make([]parsedRow, 0, len(rows))
    var firstErr error
    for _, r := range rows {
        v, err := parseValue(r.DataValue)
        if err != nil {
            if firstErr == nil { firstErr = err }
            continue
        }
        parsed = append(parsed, parsedRow{time: r.Time, value: v})
    }
    if len(parsed) == 0 {
        return parsedRow{}, fmt.Errorf("%w: bok: no usable DATA_VALUE: %v", provider.ErrMalformed, firstErr)
    }
    sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].time < parsed[j].time })
    return parsed[len(parsed)-1], nil
}

func parseValue(s string) (float64, error) {
    s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
    if s == "" { return 0, errors.New("empty DATA_VALUE") }
    v, err := strconv.ParseFloat(s, 64)
    if err != nil { return 0, fmt.Errorf("DATA_VALUE %q: %w", s, err) }
    if v <= 0 { return 0, fmt.Errorf("DATA_VALUE %q: not positive", s) }
    return v, nil
}
