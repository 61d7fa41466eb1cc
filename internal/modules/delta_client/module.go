package delta_client

import (
	"delta_bot/internal/modules/delta_client/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("delta_client",
		fx.Provide(
			service.NewClient, // *service.Client
		),
	)
}
