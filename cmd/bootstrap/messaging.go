package bootstrap

import (
	"context"
	"log/slog"

	"payment-gateway/internal/infra/messaging"
	"payment-gateway/internal/pkg/config"
	"payment-gateway/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		fx.Annotate(
			NewPublisher,
			fx.As(new(shared.Publisher)),
		),
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *messaging.KafkaPublisher {
	publisher := messaging.NewKafkaPublisher(messaging.NewKafkaWriter(cfg.Kafka))

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if err := publisher.Close(); err != nil {
				logger.Warn("failed to close kafka writer", "error", err.Error())
			}
			return nil
		},
	})

	return publisher
}
