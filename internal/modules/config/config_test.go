package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithEnvCredentials(t *testing.T) {
	t.Setenv("DELTA_API_KEY", "key")
	t.Setenv("DELTA_API_SECRET", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false, viper.New())
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.Delta.APIKey)
	assert.Equal(t, "secret", cfg.Delta.APISecret)
	assert.Equal(t, 1699, cfg.Delta.ProductID)
	assert.InDelta(t, 0.10, cfg.Risk.RiskPct, 1e-12)
	assert.InDelta(t, 50, cfg.Risk.Leverage, 1e-12)
	assert.Equal(t, 15*time.Minute, cfg.Schedule.CandlePeriod)
	assert.Equal(t, 15*time.Second, cfg.Schedule.PollInterval)
}

func TestLoad_MissingCredentialsFails(t *testing.T) {
	t.Setenv("DELTA_API_KEY", "")
	t.Setenv("DELTA_API_SECRET", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false, viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DELTA_API_KEY")
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
delta:
  api_key: file-key
  api_secret: file-secret
  product_id: 27
risk:
  risk_pct: 0.05
  stop_loss_pct: 0.01
  take_profit_multiplier: 3
  leverage: 10
schedule:
  candle_period: 5m
  poll_interval: 5s
trail:
  only_improving: true
`)
	t.Setenv("LEVERAGE", "20")
	t.Setenv("DELTA_API_KEY", "")

	cfg, err := Load(path, true, viper.New())
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Delta.APIKey)
	assert.Equal(t, 27, cfg.Delta.ProductID)
	assert.InDelta(t, 0.05, cfg.Risk.RiskPct, 1e-12)
	assert.InDelta(t, 20, cfg.Risk.Leverage, 1e-12)
	assert.Equal(t, 5*time.Minute, cfg.Schedule.CandlePeriod)
	assert.Equal(t, 5*time.Second, cfg.Schedule.PollInterval)
	assert.True(t, cfg.Trail.OnlyImproving)
	// untouched sections keep defaults
	assert.Equal(t, "ETHUSDT", cfg.Market.Symbol)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true, viper.New())
	require.Error(t, err)
}

func TestValidate_Risk(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Delta.APIKey = "k"
	cfg.Delta.APISecret = "s"
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Risk.RiskPct = 1.5
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Risk.Leverage = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Market.Limit = 10
	assert.Error(t, bad.Validate())
}
