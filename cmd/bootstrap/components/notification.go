package components

import (
	"log/slog"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/pkg/clock"
	"payment-gateway/internal/pkg/config"
	"payment-gateway/internal/usecase/idempotency"
	"payment-gateway/internal/usecase/notification"
	"payment-gateway/internal/usecase/shared"

	"go.uber.org/fx"
)

var NotificationModule = fx.Module("usecase/notification",
	fx.Provide(
		fx.Annotate(
			NewNotificationGuard,
			fx.As(new(notification.DedupGuard)),
		),
		fx.Annotate(
			notification.NewLogNotifier,
			fx.As(new(notification.Notifier)),
		),
		notification.NewConsumer,
		NewRetryCoordinator,
		notification.NewPipeline,
		notification.NewDeadLetterHandler,
	),
)

func NewNotificationGuard(cache idempotency.Cache, cfg config.Config) *idempotency.Guard {
	return idempotency.NewGuard(cache, idempotency.NotificationNamespace, cfg.Idempotency.ConsumerTTL)
}

func NewRetryCoordinator(publisher shared.Publisher, cfg config.Config, clk clock.Clock, logger *slog.Logger) *notification.RetryCoordinator {
	policy := notification.RetryPolicy{
		Attempts:     cfg.Retry.Attempts,
		InitialDelay: cfg.Retry.InitialDelay,
		Multiplier:   cfg.Retry.Multiplier,
		MaxDelay:     cfg.Retry.MaxDelay,
	}
	logger.Info("retry policy configured",
		"attempts", policy.Attempts,
		"initial_delay", policy.InitialDelay.String(),
		"multiplier", policy.Multiplier)
	return notification.NewRetryCoordinator(publisher, policy, event.PaymentEventsTopic, clk)
}
