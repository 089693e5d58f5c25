// Package krx resolves KRX ticker codes to company names from the KIND
// listing download, an EUC-KR encoded HTML table.
package krx

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/text/encoding/korean"

	"marketdata/internal/httpx"
	"marketdata/internal/provider"
)

const (
	DefaultListingURL = "https://kind.krx.co.kr/corpgeneral/corpList.do?method=download&searchType=13"

	headerName = "회사명"
	headerCode = "종목코드"
	codeWidth  = 6
)

type Config struct {
	Name string // display name, default: krx
	URL  string // default: DefaultListingURL
}

type Provider struct {
	cfg    Config
	client *resty.Client
}

// New builds the listing source on top of the shared transport in hc.
func New(cfg Config, hc *httpx.Client) *Provider {
	if cfg.Name == "" {
		cfg.Name = "krx"
	}
	if cfg.URL == "" {
		cfg.URL = DefaultListingURL
	}
	rc := resty.NewWithClient(hc.HTTP)
	if hc.UserAgent != "" {
		rc.SetHeader("User-Agent", hc.UserAgent)
	}
	for k, v := range hc.Headers {
		rc.SetHeader(k, v)
	}
	return &Provider{cfg: cfg, client: rc}
}

func (p *Provider) Name() string { return p.cfg.Name }

// FetchListing downloads the listing and returns code -> name.
func (p *Provider) FetchListing(ctx context.Context) (map[string]string, error) {
	resp, err := p.client.R().SetContext(ctx).Get(p.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("krx: performing request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("krx: GET %s -> %d", p.cfg.URL, resp.StatusCode())
	}

	body, err := decode(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%w: krx: %v", provider.ErrMalformed, err)
	}
	listing, err := ParseListing(body)
	if err != nil {
		return nil, err
	}
	if len(listing) == 0 {
		return nil, fmt.Errorf("%w: krx: listing has no rows", provider.ErrNoData)
	}
	return listing, nil
}

// decode converts EUC-KR bodies to UTF-8 and passes UTF-8 through.
func decode(b []byte) ([]byte, error) {
	if utf8.Valid(b) {
		return b, nil
	}
	return korean.EUCKR.NewDecoder().Bytes(b)
}

// ParseListing reads the first table whose header row names both the
// company and code columns. Codes are left-padded to six digits.
func ParseListing(html []byte) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: krx: parse html: %v", provider.ErrMalformed, err)
	}

	out := map[string]string{}
	found := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		nameCol, codeCol := -1, -1
		rows.First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
			switch strings.TrimSpace(cell.Text()) {
			case headerName:
				nameCol = i
			case headerCode:
				codeCol = i
			}
		})
		if nameCol < 0 || codeCol < 0 {
			return true
		}
		found = true
		rows.Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() <= nameCol || cells.Length() <= codeCol {
				return
			}
			name := strings.TrimSpace(cells.Eq(nameCol).Text())
			code := normalizeCode(cells.Eq(codeCol).Text())
			if name == "" || code == "" {
				return
			}
			out[code] = name
		})
		return false
	})
	if !found {
		return nil, fmt.Errorf("%w: krx: no table with %s/%s columns", provider.ErrMalformed, headerName, headerCode)
	}
	return out, nil
}

func normalizeCode(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) < codeWidth {
		s = strings.Repeat("0", codeWidth-len(s)) + s
	}
	return s
}
