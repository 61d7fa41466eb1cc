package config

import "github.com/spf13/viper"

type envOverride struct {
	env   string
	apply func(v *viper.Viper, key string)
}

func (c *Config) envOverrides() []envOverride {
	return []envOverride{
		{"DELTA_API_KEY", func(v *viper.Viper, k string) { c.Delta.APIKey = v.GetString(k) }},
		{"DELTA_API_SECRET", func(v *viper.Viper, k string) { c.Delta.APISecret = v.GetString(k) }},
		{"DELTA_BASE_URL", func(v *viper.Viper, k string) { c.Delta.BaseURL = v.GetString(k) }},
		{"DELTA_PRODUCT_ID", func(v *viper.Viper, k string) { c.Delta.ProductID = v.GetInt(k) }},
		{"DELTA_ASSET_ID", func(v *viper.Viper, k string) { c.Delta.AssetID = v.GetInt(k) }},

		{"RISK_PCT", func(v *viper.Viper, k string) { c.Risk.RiskPct = v.GetFloat64(k) }},
		{"STOP_LOSS_PCT", func(v *viper.Viper, k string) { c.Risk.StopLossPct = v.GetFloat64(k) }},
		{"TAKE_PROFIT_MULTIPLIER", func(v *viper.Viper, k string) { c.Risk.TakeProfitMultiplier = v.GetFloat64(k) }},
		{"LEVERAGE", func(v *viper.Viper, k string) { c.Risk.Leverage = v.GetFloat64(k) }},

		{"MARKET_SYMBOL", func(v *viper.Viper, k string) { c.Market.Symbol = v.GetString(k) }},
		{"MARKET_INTERVAL", func(v *viper.Viper, k string) { c.Market.Interval = v.GetString(k) }},

		{"CANDLE_PERIOD", func(v *viper.Viper, k string) { c.Schedule.CandlePeriod = v.GetDuration(k) }},
		{"POLL_INTERVAL", func(v *viper.Viper, k string) { c.Schedule.PollInterval = v.GetDuration(k) }},
		{"TRAIL_ONLY_IMPROVING", func(v *viper.Viper, k string) { c.Trail.OnlyImproving = v.GetBool(k) }},

		{"TRADE_LOG_PATH", func(v *viper.Viper, k string) { c.Journal.Path = v.GetString(k) }},
		{"DATABASE_DSN", func(v *viper.Viper, k string) { c.DB = v.GetString(k) }},
		{"TELEGRAM_TOKEN", func(v *viper.Viper, k string) { c.Telegram.Token = v.GetString(k) }},
		{"TELEGRAM_CHAT_ID", func(v *viper.Viper, k string) { c.Telegram.ChatID = v.GetInt64(k) }},
		{"PORT", func(v *viper.Viper, k string) { c.Service.PublicPort = v.GetInt(k) }},
		{"JAEGER_HOST", func(v *viper.Viper, k string) { c.Tracing.Host = v.GetString(k) }},
		{"LOG_LEVEL", func(v *viper.Viper, k string) { c.Log.Level = v.GetString(k) }},
	}
}

func applyEnv(c *Config, v *viper.Viper) {
	for _, o := range c.envOverrides() {
		_ = v.BindEnv(o.env)
		if v.IsSet(o.env) {
			o.apply(v, o.env)
		}
	}
}
