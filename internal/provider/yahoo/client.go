package yahoo

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"marketdata/internal/provider"
)

const (
	baseURL = "https://query1.finance.yahoo.com"
	// userAgent is a desktop browser string; the public endpoints reject bare clients.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the public Yahoo Finance chart and quote-summary endpoints.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// ClientOption is a configuration option for the Yahoo client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader adds headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			c.header.Del(key)
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewClient creates a new Yahoo client.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	c.header.Set("User-Agent", userAgent)
	c.header.Set("Accept", "application/json")
	for _, option := range options {
		option(c)
	}
	return c
}

// APIError is a non-2xx response from Yahoo.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("yahoo: status %d: %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("yahoo: status %d", e.StatusCode)
}

// HTTPStatus is the upstream status code.
func (e *APIError) HTTPStatus() int { return e.StatusCode }

// Unwrap maps 404 to provider.ErrNoData so callers can tell unknown symbols apart.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return provider.ErrNoData
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
}
