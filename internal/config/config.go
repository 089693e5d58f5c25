package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    "github.com/joho/godotenv"
    "gopkg.in/yaml.v3"
)

type Server struct {
    Port              string `json:"port" yaml:"port"`
    RequestTimeoutSec int    `json:"request_timeout_sec" yaml:"request_timeout_sec"`
    // AttemptTimeoutSec bounds a single adapter call inside a fallback chain.
    AttemptTimeoutSec int `json:"attempt_timeout_sec" yaml:"attempt_timeout_sec"`
}

type Yahoo struct {
    BaseURL    string `json:"base_url" yaml:"base_url"`
    TimeoutSec int    `json:"timeout_sec" yaml:"timeout_sec"`
    MaxRPM     int    `json:"max_requests_per_minute" yaml:"max_requests_per_minute"`
    // Profile adds sector, industry and market cap to US quotes (one extra call per miss).
    Profile bool `json:"profile" yaml:"profile"`
    // FinanceGo puts the finance-go chart source behind Yahoo in the US chain.
    FinanceGo bool `json:"finance_go" yaml:"finance_go"`
}

type BOK struct {
    APIKey       string `json:"api_key" yaml:"api_key"`
    Endpoint     string `json:"endpoint" yaml:"endpoint"`
    TimeoutSec   int    `json:"timeout_sec" yaml:"timeout_sec"`
    MaxRPM       int    `json:"max_requests_per_minute" yaml:"max_requests_per_minute"`
    LookbackDays int    `json:"lookback_days" yaml:"lookback_days"`
}

type KRX struct {
    Enabled    bool   `json:"enabled" yaml:"enabled"`
    URL        string `json:"url" yaml:"url"`
    TimeoutSec int    `json:"timeout_sec" yaml:"timeout_sec"`
}

type Cache struct {
    // CleanupSpec is a cron spec for sweeping expired entries; empty disables it.
    CleanupSpec string `json:"cleanup_spec" yaml:"cleanup_spec"`
}

type Log struct {
    Level  string `json:"level" yaml:"level"`   // debug|info|warn|error
    Format string `json:"format" yaml:"format"` // text|json
}

type Config struct {
    Server Server `json:"server" yaml:"server"`
    Yahoo  Yahoo  `json:"yahoo" yaml:"yahoo"`
    BOK    BOK    `json:"bok" yaml:"bok"`
    KRX    KRX    `json:"krx" yaml:"krx"`
    Cache  Cache  `json:"cache" yaml:"cache"`
    Log    Log    `json:"log" yaml:"log"`
}

func Default() Config {
    return Config{
        Server: Server{Port: "8080", RequestTimeoutSec: 30, AttemptTimeoutSec: 15},
        Yahoo: Yahoo{
            BaseURL:    "https://query1.finance.yahoo.com",
            TimeoutSec: 15,
            MaxRPM:     60,
            FinanceGo:  true,
        },
        BOK: BOK{
            Endpoint:     "https://ecos.bok.or.kr/api/StatisticSearch",
            TimeoutSec:   10,
            MaxRPM:       5,
            LookbackDays: 7,
        },
        KRX: KRX{
            Enabled:    true,
            URL:        "https://kind.krx.co.kr/corpgeneral/corpList.do?method=download&searchType=13",
            TimeoutSec: 15,
        },
        Cache: Cache{CleanupSpec: "@every 10m"},
        Log:   Log{Level: "info", Format: "text"},
    }
}

// Load reads config from path (JSON, or YAML for .yaml/.yml). If path is empty
// it tries config.json, then config.yaml; a missing file yields defaults.
// A .env file in the working directory is loaded first, and environment
// variables override select fields for secrecy.
func Load(path string) (Config, error) {
    cfg := Default()
    if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
        return cfg, fmt.Errorf("load .env: %w", err)
    }
    if path == "" {
        for _, p := range []string{"config.json", "config.yaml", "config.yml"} {
            if _, err := os.Stat(p); err == nil { path = p; break }
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := decode(path, b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, cfg.Validate()
}

func decode(path string, b []byte, cfg *Config) error {
    switch strings.ToLower(filepath.Ext(path)) {
    case ".yaml", ".yml":
        return yaml.Unmarshal(b, cfg)
    default:
        return json.Unmarshal(b, cfg)
    }
}

// Validate rejects values no component could run with.
func (c Config) Validate() error {
    var errs []error
    if c.Server.Port == "" { errs = append(errs, errors.New("server.port is empty")) }
    if c.Server.RequestTimeoutSec <= 0 { errs = append(errs, errors.New("server.request_timeout_sec must be positive")) }
    if c.Server.AttemptTimeoutSec <= 0 { errs = append(errs, errors.New("server.attempt_timeout_sec must be positive")) }
    if c.Yahoo.BaseURL == "" { errs = append(errs, errors.New("yahoo.base_url is empty")) }
    if c.Yahoo.TimeoutSec <= 0 { errs = append(errs, errors.New("yahoo.timeout_sec must be positive")) }
    if c.Yahoo.MaxRPM <= 0 { errs = append(errs, errors.New("yahoo.max_requests_per_minute must be positive")) }
    if c.BOK.Endpoint == "" { errs = append(errs, errors.New("bok.endpoint is empty")) }
    if c.BOK.TimeoutSec <= 0 { errs = append(errs, errors.New("bok.timeout_sec must be positive")) }
    if c.BOK.MaxRPM <= 0 { errs = append(errs, errors.New("bok.max_requests_per_minute must be positive")) }
    if c.KRX.Enabled && c.KRX.URL == "" { errs = append(errs, errors.New("krx.url is empty")) }
    if c.KRX.TimeoutSec <= 0 { errs = append(errs, errors.New("krx.timeout_sec must be positive")) }
    if _, err := ParseLevel(c.Log.Level); err != nil { errs = append(errs, err) }
    switch strings.ToLower(c.Log.Format) {
    case "", "text", "json":
    default:
        errs = append(errs, fmt.Errorf("log.format %q: want text or json", c.Log.Format))
    }
    if len(errs) > 0 { return fmt.Errorf("invalid config: %w", errors.Join(errs...)) }
    return nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if x, ok := envInt("REQUEST_TIMEOUT_SEC"); ok && x > 0 { cfg.Server.RequestTimeoutSec = x }
    if v := os.Getenv("BOK_API_KEY"); v != "" { cfg.BOK.APIKey = v }
    if v := os.Getenv("BOK_ENDPOINT"); v != "" { cfg.BOK.Endpoint = v }
    if x, ok := envInt("BOK_MAX_RPM"); ok && x > 0 { cfg.BOK.MaxRPM = x }
    if v := os.Getenv("YAHOO_BASE_URL"); v != "" { cfg.Yahoo.BaseURL = v }
    if x, ok := envInt("YAHOO_MAX_RPM"); ok && x > 0 { cfg.Yahoo.MaxRPM = x }
    if v := os.Getenv("YAHOO_PROFILE"); v != "" {
        if b, ok := parseBool(v); ok { cfg.Yahoo.Profile = b }
    }
    if v := os.Getenv("KRX_LISTING_URL"); v != "" { cfg.KRX.URL = v }
    if v, ok := os.LookupEnv("CACHE_CLEANUP_SPEC"); ok { cfg.Cache.CleanupSpec = strings.TrimSpace(v) }
    if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Log.Level = v }
    if v := os.Getenv("LOG_FORMAT"); v != "" { cfg.Log.Format = v }
}

func envInt(key string) (int, bool) {
    v := os.Getenv(key)
    if v == "" { return 0, false }
    var x int
    if _, err := fmt.Sscanf(v, "%d", &x); err != nil { return 0, false }
    return x, true
}

func parseBool(v string) (bool, bool) {
    switch strings.ToLower(strings.TrimSpace(v)) {
    case "1", "true", "yes", "y": return true, true
    case "0", "false", "no", "n": return false, true
    }
    return false, false
}
