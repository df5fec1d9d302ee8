package components

import (
	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/domain/payment"
	"payment-gateway/internal/pkg/config"
	"payment-gateway/internal/usecase/commands"
	"payment-gateway/internal/usecase/idempotency"
	"payment-gateway/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	payment.NewApproveAllDecider,
	func() event.Encoder {
		return event.EncodeTransaction
	},
	fx.Annotate(
		NewPaymentGuard,
		fx.As(new(commands.IdempotencyGuard)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewPaymentExecutor,
		commands.NewPaymentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewPaymentQueries,
	),
)

func NewPaymentGuard(cache idempotency.Cache, cfg config.Config) *idempotency.Guard {
	return idempotency.NewGuard(cache, idempotency.PaymentNamespace, cfg.Idempotency.ProducerTTL)
}
