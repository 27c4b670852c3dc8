package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Contains(t, cfg.Server.CORSOrigins, "https://medspasync.com")
	assert.InDelta(t, 50, cfg.Server.RequestsPerSec, 0.001)
	assert.Equal(t, 100, cfg.Server.RequestBurst)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "reconcile.db", cfg.Store.DSN)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.InDelta(t, 0.4, cfg.Match.NameWeight, 0.001)
	assert.InDelta(t, 0.3, cfg.Match.ServiceWeight, 0.001)
	assert.InDelta(t, 0.2, cfg.Match.DateWeight, 0.001)
	assert.InDelta(t, 0.1, cfg.Match.AmountWeight, 0.001)
	assert.InDelta(t, 0.95, cfg.Match.HighThreshold, 0.001)
	assert.InDelta(t, 0.80, cfg.Match.MediumThreshold, 0.001)
	assert.InDelta(t, 0.95, cfg.Match.DefaultThreshold, 0.001)
	assert.InDelta(t, 168, cfg.Match.DateDecayHours, 0.001)

	assert.InDelta(t, 0.1, cfg.Churn.BaseProbability, 0.001)
	assert.InDelta(t, 0.8, cfg.Churn.CriticalThreshold, 0.001)

	assert.InDelta(t, 45.0, cfg.Value.HourlyRate, 0.001)
	assert.InDelta(t, 299.0, cfg.Value.DefaultSubscription, 0.001)
	assert.InDelta(t, 0.947, cfg.Value.DefaultAccuracy, 0.001)
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	dir := chdirTemp(t)

	content := `
server:
  port: 9090
  requests_per_sec: 5
store:
  dsn: ""
log:
  level: debug
match:
  default_threshold: 0.9
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 5, cfg.Server.RequestsPerSec, 0.001)
	assert.Empty(t, cfg.Store.DSN, "empty DSN disables persistence")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.InDelta(t, 0.9, cfg.Match.DefaultThreshold, 0.001)

	// Untouched keys keep their defaults.
	assert.InDelta(t, 0.95, cfg.Match.HighThreshold, 0.001)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("RECONCILE_SERVER_PORT", "7000")
	t.Setenv("RECONCILE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [not a map"), 0o644))

	_, err := Load()
	require.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "bogus", Format: "json"})
	require.Error(t, err)
}
