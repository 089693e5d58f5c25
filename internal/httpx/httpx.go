package httpx

import (
    "net"
    "net/http"
    "time"
)

// DefaultUserAgent is sent when a request carries no User-Agent of its own.
const DefaultUserAgent = "marketdata/1.0"

// Client is a small wrapper around http.Client with sane defaults.
// It satisfies the HTTPClient interfaces of the upstream clients.
type Client struct {
    HTTP      *http.Client
    UserAgent string
    Headers   map[string]string
}

// New builds a client with a tuned transport. timeout bounds the whole
// exchange; there is no retry at this layer.
func New(timeout time.Duration) *Client {
    transport := &http.Transport{
        Proxy:                 http.ProxyFromEnvironment,
        DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
        MaxIdleConns:          50,
        MaxIdleConnsPerHost:   10,
        MaxConnsPerHost:       20,
        ForceAttemptHTTP2:     true,
        IdleConnTimeout:       90 * time.Second,
        TLSHandshakeTimeout:   5 * time.Second,
        ExpectContinueTimeout: 1 * time.Second,
        ResponseHeaderTimeout: timeout,
    }
    return &Client{HTTP: &http.Client{Timeout: timeout, Transport: transport}, UserAgent: DefaultUserAgent}
}

// Do sends req, filling in the user agent and default headers it lacks.
// Cancellation follows req.Context().
func (c *Client) Do(req *http.Request) (*http.Response, error) {
    if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
        req.Header.Set("User-Agent", c.UserAgent)
    }
    for k, v := range c.Headers {
        if req.Header.Get(k) == "" {
            req.Header.Set(k, v)
        }
    }
    return c.HTTP.Do(req)
}

// Timeout reports the configured overall timeout.
func (c *Client) Timeout() time.Duration { return c.HTTP.Timeout }
