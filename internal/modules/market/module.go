package market

import (
	"delta_bot/internal/modules/market/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("market",
		fx.Provide(
			fx.Annotate(service.NewBinanceFetcher, fx.As(new(service.CandleFetcher))),
			service.NewSource, // *service.Source
		),
	)
}
