package logging

import (
	"delta_bot/internal/modules/config"
	"delta_bot/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the process wide *zap.Logger built from config.
func Module() fx.Option {
	return fx.Module("logging",
		fx.Provide(
			func(cfg *config.Config) (*zap.Logger, error) {
				logger.SetServiceName("delta_bot")
				return logger.New(logger.Config{
					Level:      cfg.Log.Level,
					File:       cfg.Log.File,
					MaxSizeMB:  cfg.Log.MaxSizeMB,
					MaxBackups: cfg.Log.MaxBackups,
				})
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, l *zap.Logger) {
			lc.Append(fx.StopHook(func() {
				_ = l.Sync()
			}))
		}),
	)
}
