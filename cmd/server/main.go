package main

import (
    "context"
    "errors"
    "log/slog"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/robfig/cron/v3"

    "marketdata/internal/aggregate"
    "marketdata/internal/bootstrap"
    "marketdata/internal/config"
)

func main() {
    // Config
    cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
    log := cfg.Log.NewLogger(os.Stderr)
    if err != nil {
        log.Error("config", "err", err)
        os.Exit(1)
    }
    gin.SetMode(gin.ReleaseMode)

    svc := bootstrap.Build(cfg, log)
    janitor, err := startJanitor(cfg.Cache.CleanupSpec, svc, log)
    if err != nil {
        log.Error("cache janitor", "spec", cfg.Cache.CleanupSpec, "err", err)
        os.Exit(1)
    }

    timeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second
    srv := &http.Server{
        Addr:              ":" + cfg.Server.Port,
        Handler:           withCORS(withGzip(newRouter(svc, log, timeout))),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      timeout + 10*time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        log.Info("server listening", "addr", srv.Addr)
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            log.Error("server", "err", err)
            os.Exit(1)
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    log.Info("shutting down")
    if janitor != nil { <-janitor.Stop().Done() }
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

// startJanitor sweeps expired cache entries on spec. Expiry is enforced on
// read regardless; the sweep only returns memory. An empty spec disables it.
func startJanitor(spec string, svc *aggregate.Service, log *slog.Logger) (*cron.Cron, error) {
    if spec == "" { return nil, nil }
    c := cron.New()
    if _, err := c.AddFunc(spec, func() {
        n := svc.Cache().Cleanup()
        log.Debug("cache sweep", "removed", n, "remaining", svc.Cache().Len())
    }); err != nil {
        return nil, err
    }
    c.Start()
    return c, nil
}
