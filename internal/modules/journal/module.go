package journal

import (
	"context"
	"time"

	"delta_bot/internal/modules/config"
	"delta_bot/internal/modules/journal/service"
	"delta_bot/pkg/db"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(
			func(lc fx.Lifecycle, cfg *config.Config, pg *db.PgTxManager, log *zap.Logger) (service.Journal, error) {
				file, err := service.OpenFile(cfg.Journal.Path, time.Now())
				if err != nil {
					return nil, err
				}
				lc.Append(fx.StopHook(file.Close))

				journals := service.Multi{file}
				if pg != nil {
					store := service.NewPg(pg)
					lc.Append(fx.StartHook(func(ctx context.Context) error {
						return store.EnsureSchema(ctx)
					}))
					journals = append(journals, store)
				}
				log.Info("trade journal ready",
					zap.String("path", cfg.Journal.Path),
					zap.Bool("postgres", pg != nil),
				)
				return journals, nil
			},
		),
	)
}
