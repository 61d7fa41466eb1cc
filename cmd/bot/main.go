package main

import (
	"context"

	"delta_bot/internal/modules/config"
	"delta_bot/internal/modules/delta_client"
	"delta_bot/internal/modules/health"
	"delta_bot/internal/modules/journal"
	"delta_bot/internal/modules/logging"
	"delta_bot/internal/modules/market"
	"delta_bot/internal/modules/postgres"
	"delta_bot/internal/modules/tracing"
	"delta_bot/internal/notify"
	"delta_bot/internal/runner"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config.Module(),
		logging.Module(),
		tracing.Module(),
		postgres.Module(),
		delta_client.Module(),
		market.Module(),
		journal.Module(),
		notify.Module(),
		health.Module(),
		runner.Module(),
	)
	app.Run()
}
