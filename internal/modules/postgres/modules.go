package postgres

import (
	"context"

	"delta_bot/internal/modules/config"
	"delta_bot/pkg/db"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides *db.PgTxManager. Without db_dsn it provides nil and the
// audit trail stays file-only.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*db.PgTxManager, error) {
				if cfg.DB == "" {
					log.Info("postgres disabled: db_dsn is empty")
					return nil, nil
				}
				m, err := db.Connect(ctx, cfg.DB)
				if err != nil {
					return nil, errors.Wrap(err, "postgres")
				}
				lc.Append(fx.StopHook(m.Close))
				log.Info("postgres connected")
				return m, nil
			},
		),
	)
}
