package main

import (
    "context"
    "errors"
    "log/slog"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"

    "marketdata/internal/aggregate"
    "marketdata/internal/provider"
)

type handlers struct {
    svc     *aggregate.Service
    log     *slog.Logger
    timeout time.Duration
}

func newRouter(svc *aggregate.Service, log *slog.Logger, timeout time.Duration) *gin.Engine {
    h := &handlers{svc: svc, log: log, timeout: timeout}

    r := gin.New()
    r.Use(gin.Recovery(), requestID(), accessLog(log))
    r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

    api := r.Group("/api")
    api.GET("/stocks/:market/:ticker", h.stock)
    api.GET("/fundamentals/:market/:ticker", h.fundamentals)
    api.GET("/exchange/usd-krw", h.exchangeRate)
    api.GET("/market/overview", h.overview)
    api.GET("/market/indicators/:market/:ticker", h.indicators)
    return r
}

func (h *handlers) stock(c *gin.Context) {
    market, ok := h.market(c)
    if !ok { return }
    ctx, cancel := h.ctx(c)
    defer cancel()
    q, err := h.svc.Stock(ctx, market, c.Param("ticker"), provider.ParsePeriod(c.Query("period")))
    h.respond(c, q, err)
}

func (h *handlers) fundamentals(c *gin.Context) {
    market, ok := h.market(c)
    if !ok { return }
    ctx, cancel := h.ctx(c)
    defer cancel()
    f, err := h.svc.Fundamentals(ctx, market, c.Param("ticker"))
    h.respond(c, f, err)
}

func (h *handlers) exchangeRate(c *gin.Context) {
    ctx, cancel := h.ctx(c)
    defer cancel()
    r, err := h.svc.ExchangeRate(ctx)
    h.respond(c, r, err)
}

func (h *handlers) overview(c *gin.Context) {
    ctx, cancel := h.ctx(c)
    defer cancel()
    o, err := h.svc.Overview(ctx)
    h.respond(c, o, err)
}

func (h *handlers) indicators(c *gin.Context) {
    market, ok := h.market(c)
    if !ok { return }
    ctx, cancel := h.ctx(c)
    defer cancel()
    s, err := h.svc.Indicators(ctx, market, c.Param("ticker"))
    h.respond(c, s, err)
}

func (h *handlers) market(c *gin.Context) (provider.Market, bool) {
    m, ok := provider.ParseMarket(c.Param("market"))
    if !ok {
        h.fail(c, http.StatusBadRequest, aggregate.ErrInvalidMarket)
        return "", false
    }
    return m, true
}

func (h *handlers) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
    if h.timeout <= 0 { return context.WithCancel(c.Request.Context()) }
    return context.WithTimeout(c.Request.Context(), h.timeout)
}

func (h *handlers) respond(c *gin.Context, v any, err error) {
    if err != nil {
        h.fail(c, statusFor(err), err)
        return
    }
    c.JSON(http.StatusOK, v)
}

func (h *handlers) fail(c *gin.Context, status int, err error) {
    if status >= http.StatusInternalServerError {
        h.log.Warn("request failed", "path", c.Request.URL.Path, "status", status, "request_id", c.GetString(requestIDKey), "err", err)
    }
    c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "requestId": c.GetString(requestIDKey)})
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
    switch {
    case errors.Is(err, aggregate.ErrInvalidTicker), errors.Is(err, aggregate.ErrInvalidMarket):
        return http.StatusBadRequest
    case errors.Is(err, provider.ErrNotFound):
        return http.StatusNotFound
    case errors.Is(err, provider.ErrUpstreamUnavailable):
        return http.StatusBadGateway
    }
    return http.StatusInternalServerError
}
