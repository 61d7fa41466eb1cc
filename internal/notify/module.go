package notify

import (
	"delta_bot/internal/modules/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides Telegram when token and chat id are set, the log notifier otherwise.
func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			func(cfg *config.Config, log *zap.Logger) (Notifier, error) {
				nlog := log.Named("notify")
				if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
					return NewLog(nlog), nil
				}
				return NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, nlog)
			},
		),
	)
}
