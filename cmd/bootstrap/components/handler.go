package components

import (
	"payment-gateway/internal/handler"
	"payment-gateway/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewPaymentHandler,
	),
	fx.Invoke(handler.NewRouter),
)
