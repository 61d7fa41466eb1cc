package config

import (
	"os"
	"path/filepath"
	"time"

	"delta_bot/internal/models"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	defaultConfigFile = "values_local.yaml"
	configDir         = "configs"
)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	Delta    DeltaConfig           `yaml:"delta"`
	Risk     models.RiskParameters `yaml:"risk"`
	Market   MarketConfig          `yaml:"market"`
	Schedule ScheduleConfig        `yaml:"schedule"`
	Trail    TrailConfig           `yaml:"trail"`
	Journal  JournalConfig         `yaml:"journal"`
	DB       string                `yaml:"db_dsn"`
	Telegram TelegramConfig        `yaml:"telegram"`
	Service  ServiceConfig         `yaml:"service"`
	Tracing  TracingConfig         `yaml:"tracing"`
	Log      LogConfig             `yaml:"log"`
}

type DeltaConfig struct {
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key"`
	APISecret string        `yaml:"api_secret"`
	ProductID int           `yaml:"product_id"`
	AssetID   int           `yaml:"asset_id"` // settlement asset used for balance, 3 = USD
	Timeout   time.Duration `yaml:"timeout"`
}

type MarketConfig struct {
	Symbol       string  `yaml:"symbol"`
	Interval     string  `yaml:"interval"`
	Limit        int     `yaml:"limit"`
	EMAPeriod    int     `yaml:"ema_period"`
	VolumePeriod int     `yaml:"volume_period"`
	ADXPeriod    int     `yaml:"adx_period"`
	ADXThreshold float64 `yaml:"adx_threshold"`
}

type ScheduleConfig struct {
	CandlePeriod time.Duration `yaml:"candle_period"`
	PollInterval time.Duration `yaml:"poll_interval"`
	ErrorBackoff time.Duration `yaml:"error_backoff"`
	BalanceRetry time.Duration `yaml:"balance_retry"`
}

type TrailConfig struct {
	// Observed behaviour re-issues the trailing stop every poll; true sends only improvements.
	OnlyImproving bool `yaml:"only_improving"`
}

type JournalConfig struct {
	Path string `yaml:"path"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type ServiceConfig struct {
	Host       string `yaml:"host"`
	PublicPort int    `yaml:"public_port"`
}

type TracingConfig struct {
	Host string `yaml:"host"` // empty disables jaeger
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

func Default() Config {
	return Config{
		Delta: DeltaConfig{
			BaseURL:   "https://cdn-ind.testnet.deltaex.org",
			ProductID: 1699,
			AssetID:   3,
			Timeout:   10 * time.Second,
		},
		Risk: models.RiskParameters{
			RiskPct:              0.10,
			StopLossPct:          0.02,
			TakeProfitMultiplier: 7,
			Leverage:             50,
		},
		Market: MarketConfig{
			Symbol:       "ETHUSDT",
			Interval:     "15m",
			Limit:        100,
			EMAPeriod:    21,
			VolumePeriod: 30,
			ADXPeriod:    14,
			ADXThreshold: 20,
		},
		Schedule: ScheduleConfig{
			CandlePeriod: 15 * time.Minute,
			PollInterval: 15 * time.Second,
			ErrorBackoff: 30 * time.Second,
			BalanceRetry: 60 * time.Second,
		},
		Journal: JournalConfig{Path: "trades_log.txt"},
		Service: ServiceConfig{Host: "0.0.0.0", PublicPort: 10000},
		Tracing: TracingConfig{Port: 6831},
		Log: LogConfig{
			Level:      "info",
			File:       "logs/bot.json.log",
			MaxSizeMB:  50,
			MaxBackups: 5,
		},
	}
}

func NewConfig() (*Config, error) {
	v := viper.New()
	_ = v.BindEnv(configFilePathENV)

	path := filepath.Join(configDir, defaultConfigFile)
	explicit := false
	if name := v.GetString(configFilePathENV); name != "" {
		explicit = true
		path = name
		if !filepath.IsAbs(name) && filepath.Dir(name) == "." {
			path = filepath.Join(configDir, name)
		}
	}
	return Load(path, explicit, v)
}

// Load decodes the yaml file over defaults, applies env overrides and validates.
// A missing file is only an error when it was asked for explicitly.
func Load(path string, required bool, v *viper.Viper) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer func() {
			_ = file.Close()
		}()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, errors.Wrapf(err, "decode config file %s", path)
		}
	case os.IsNotExist(err) && !required:
	default:
		return nil, errors.Wrapf(err, "open config file %s", path)
	}

	applyEnv(&cfg, v)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Delta.APIKey == "" {
		return errors.New("DELTA_API_KEY is required")
	}
	if c.Delta.APISecret == "" {
		return errors.New("DELTA_API_SECRET is required")
	}
	if c.Delta.BaseURL == "" {
		return errors.New("delta.base_url is required")
	}
	if c.Delta.ProductID <= 0 {
		return errors.Errorf("delta.product_id must be > 0, got %d", c.Delta.ProductID)
	}
	if err := c.Risk.Validate(); err != nil {
		return err
	}
	if c.Schedule.CandlePeriod <= 0 || c.Schedule.PollInterval <= 0 {
		return errors.New("schedule.candle_period and schedule.poll_interval must be > 0")
	}
	if c.Schedule.ErrorBackoff < 0 || c.Schedule.BalanceRetry < 0 {
		return errors.New("schedule backoffs must not be negative")
	}
	if c.Market.Symbol == "" || c.Market.Interval == "" {
		return errors.New("market.symbol and market.interval are required")
	}
	if c.Market.EMAPeriod <= 0 || c.Market.VolumePeriod <= 0 || c.Market.ADXPeriod <= 0 {
		return errors.New("indicator periods must be > 0")
	}
	if need := c.Market.requiredBars(); c.Market.Limit < need {
		return errors.Errorf("market.limit must be >= %d for the configured indicators", need)
	}
	return nil
}

// requiredBars is the shortest history that yields a value for every indicator.
func (m MarketConfig) requiredBars() int {
	need := m.EMAPeriod
	if m.VolumePeriod > need {
		need = m.VolumePeriod
	}
	if adx := 2 * m.ADXPeriod; adx > need {
		need = adx
	}
	return need + 1
}
