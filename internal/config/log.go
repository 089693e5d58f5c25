package config

import (
    "fmt"
    "io"
    "log/slog"
    "strings"
)

// ParseLevel maps debug|info|warn|error onto slog levels; empty is info.
func ParseLevel(s string) (slog.Level, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "debug": return slog.LevelDebug, nil
    case "", "info": return slog.LevelInfo, nil
    case "warn", "warning": return slog.LevelWarn, nil
    case "error": return slog.LevelError, nil
    }
    return 0, fmt.Errorf("log.level %q: want debug, info, warn or error", s)
}

// NewLogger builds the root logger writing to w.
func (l Log) NewLogger(w io.Writer) *slog.Logger {
    level, err := ParseLevel(l.Level)
    if err != nil { level = slog.LevelInfo }
    opts := &slog.HandlerOptions{Level: level}
    if strings.EqualFold(l.Format, "json") {
        return slog.New(slog.NewJSONHandler(w, opts))
    }
    return slog.New(slog.NewTextHandler(w, opts))
}
