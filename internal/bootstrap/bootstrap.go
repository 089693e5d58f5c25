// Package bootstrap wires configuration into clients, limiters and the
// per-domain fallback chains behind an aggregate.Service.
package bootstrap

import (
    "log/slog"
    "time"

    "marketdata/internal/aggregate"
    "marketdata/internal/config"
    "marketdata/internal/httpx"
    "marketdata/internal/provider"
    "marketdata/internal/provider/bok"
    "marketdata/internal/provider/cache"
    "marketdata/internal/provider/financego"
    "marketdata/internal/provider/krx"
    "marketdata/internal/provider/ratelimit"
    "marketdata/internal/provider/yahoo"
    "marketdata/internal/provider/yahooadapter"
)

// Limiter keys. finance-go reads the same Yahoo backend, so it shares the yahoo window.
const (
    KeyYahoo = "yahoo"
    KeyBOK   = "bok"
)

// Build assembles the service. Nothing here performs I/O.
func Build(cfg config.Config, log *slog.Logger) *aggregate.Service {
    if log == nil { log = slog.Default() }

    yhttp := httpx.New(seconds(cfg.Yahoo.TimeoutSec))
    yc := yahoo.NewClient(yahoo.WithBaseURL(cfg.Yahoo.BaseURL), yahoo.WithHTTPClient(yhttp))
    yl := ratelimit.PerMinute(cfg.Yahoo.MaxRPM)
    bl := ratelimit.PerMinute(cfg.BOK.MaxRPM)

    usBars := []provider.BarSource{
        &ratelimit.Bars{S: yahooadapter.NewBars(yahooadapter.Config{Profile: cfg.Yahoo.Profile}, yc), L: yl, Key: KeyYahoo},
    }
    if cfg.Yahoo.FinanceGo {
        usBars = append(usBars, &ratelimit.Bars{S: financego.New(financego.Config{}), L: yl, Key: KeyYahoo})
    }

    krBars := []provider.BarSource{
        &ratelimit.Bars{S: yahooadapter.NewBars(yahooadapter.Config{Suffix: yahooadapter.SuffixKOSPI}, yc), L: yl, Key: KeyYahoo},
        &ratelimit.Bars{S: yahooadapter.NewBars(yahooadapter.Config{Suffix: yahooadapter.SuffixKOSDAQ}, yc), L: yl, Key: KeyYahoo},
    }

    var rates []provider.RateSource
    if cfg.BOK.APIKey != "" {
        b := bok.New(bok.Config{
            APIKey:       cfg.BOK.APIKey,
            Endpoint:     cfg.BOK.Endpoint,
            LookbackDays: cfg.BOK.LookbackDays,
        }, httpx.New(seconds(cfg.BOK.TimeoutSec)))
        rates = append(rates, &ratelimit.Rates{S: b, L: bl, Key: KeyBOK})
    } else {
        log.Info("bok api key not set; usd/krw served by yahoo only")
    }
    rates = append(rates, &ratelimit.Rates{S: yahooadapter.NewRates(yc), L: yl, Key: KeyYahoo})

    src := aggregate.Sources{
        USBars: usBars,
        KRBars: krBars,
        Rates:  rates,
        USFundamentals: []provider.FundamentalsSource{
            &ratelimit.Fundamentals{S: yahooadapter.NewFundamentals(yahooadapter.Config{}, yc), L: yl, Key: KeyYahoo},
        },
        KRFundamentals: []provider.FundamentalsSource{
            &ratelimit.Fundamentals{S: yahooadapter.NewFundamentals(yahooadapter.Config{Suffix: yahooadapter.SuffixKOSPI}, yc), L: yl, Key: KeyYahoo},
            &ratelimit.Fundamentals{S: yahooadapter.NewFundamentals(yahooadapter.Config{Suffix: yahooadapter.SuffixKOSDAQ}, yc), L: yl, Key: KeyYahoo},
        },
    }
    if cfg.KRX.Enabled {
        src.Listing = krx.New(krx.Config{URL: cfg.KRX.URL}, httpx.New(seconds(cfg.KRX.TimeoutSec)))
    }

    return aggregate.New(cache.New(), src,
        aggregate.WithLogger(log),
        aggregate.WithAttemptTimeout(seconds(cfg.Server.AttemptTimeoutSec)),
    )
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }
