package tracing

import (
	"delta_bot/internal/modules/config"
	"delta_bot/pkg/tracing"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("tracing",
		fx.Provide(
			func(lc fx.Lifecycle, cfg *config.Config) (opentracing.Tracer, error) {
				tracer, closeFn, err := tracing.InitTracer(tracing.Config{
					Service: "delta_bot",
					Host:    cfg.Tracing.Host,
					Port:    cfg.Tracing.Port,
				})
				if err != nil {
					return nil, err
				}
				lc.Append(fx.StopHook(closeFn))
				return tracer, nil
			},
		),
	)
}
