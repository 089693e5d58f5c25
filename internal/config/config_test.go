package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"marketdata/internal/config"
)

// Tests here use t.Setenv and t.Chdir, so none of them run in parallel.

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")

	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoad_JSON(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server": {"port": "9090"},
		"yahoo": {"max_requests_per_minute": 30, "profile": true},
		"bok": {"api_key": "from-file"}
	}`), 0o600))

	// Act
	cfg, err := config.Load(path)

	// Assert: unset fields keep their defaults
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, 30, cfg.Yahoo.MaxRPM)
	require.True(t, cfg.Yahoo.Profile)
	require.Equal(t, "from-file", cfg.BOK.APIKey)
	require.Equal(t, 5, cfg.BOK.MaxRPM)
	require.Equal(t, "@every 10m", cfg.Cache.CleanupSpec)
}

func TestLoad_YAML(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"krx:\n  enabled: false\nlog:\n  level: debug\n  format: json\n"), 0o600))

	// Act: found by the default lookup
	cfg, err := config.Load("")

	// Assert
	require.NoError(t, err)
	require.False(t, cfg.KRX.Enabled)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	// Arrange
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "7000")
	t.Setenv("REQUEST_TIMEOUT_SEC", "45")
	t.Setenv("BOK_API_KEY", "secret")
	t.Setenv("BOK_MAX_RPM", "2")
	t.Setenv("YAHOO_BASE_URL", "http://127.0.0.1:1")
	t.Setenv("YAHOO_MAX_RPM", "not-a-number")
	t.Setenv("CACHE_CLEANUP_SPEC", "")
	t.Setenv("LOG_LEVEL", "warn")

	// Act
	cfg, err := config.Load("")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "7000", cfg.Server.Port)
	require.Equal(t, 45, cfg.Server.RequestTimeoutSec)
	require.Equal(t, "secret", cfg.BOK.APIKey)
	require.Equal(t, 2, cfg.BOK.MaxRPM)
	require.Equal(t, "http://127.0.0.1:1", cfg.Yahoo.BaseURL)
	require.Equal(t, 60, cfg.Yahoo.MaxRPM, "unparsable values are ignored")
	require.Empty(t, cfg.Cache.CleanupSpec)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KRX_LISTING_URL=http://listing.test/corp\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("KRX_LISTING_URL") })

	// Act
	cfg, err := config.Load("")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "http://listing.test/corp", cfg.KRX.URL)
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":`), 0o600))

	_, err := config.Load(path)
	require.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	cfg.Yahoo.MaxRPM = 0
	cfg.BOK.Endpoint = ""
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	require.ErrorContains(t, err, "yahoo.max_requests_per_minute must be positive")
	require.ErrorContains(t, err, "bok.endpoint is empty")
	require.ErrorContains(t, err, `log.format "xml"`)

	cfg = config.Default()
	cfg.KRX.Enabled = false
	cfg.KRX.URL = ""
	require.NoError(t, cfg.Validate())
}

func TestLog_NewLogger(t *testing.T) {
	var buf bytes.Buffer

	log := config.Log{Level: "warn", Format: "json"}.NewLogger(&buf)
	log.Info("dropped")
	log.Warn("kept", "source", "yahoo")

	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), `"msg":"kept"`)
	require.Contains(t, buf.String(), `"source":"yahoo"`)

	lvl, err := config.ParseLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)
	_, err = config.ParseLevel("loud")
	require.Error(t, err)
}
