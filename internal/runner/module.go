package runner

import (
	"context"

	deltasvc "delta_bot/internal/modules/delta_client/service"
	marketsvc "delta_bot/internal/modules/market/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			func(c *deltasvc.Client) Exchange { return c },
			func(s *marketsvc.Source) SignalSource { return s },
			NewClock,
			NewTrailController, // *TrailController
			NewManager,         // *Manager
			func(m *Manager) CycleRunner { return m },
			NewScheduler, // *Scheduler
		),
		fx.Invoke(func(lc fx.Lifecycle, s *Scheduler, ctx context.Context, log *zap.Logger) {
			runCtx, cancel := context.WithCancel(ctx)
			done := make(chan struct{})
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						defer close(done)
						_ = s.Run(runCtx)
					}()
					return nil
				},
				OnStop: func(stopCtx context.Context) error {
					cancel()
					select {
					case <-done:
					case <-stopCtx.Done():
						log.Warn("scheduler did not stop in time")
					}
					return nil
				},
			})
		}),
	)
}
