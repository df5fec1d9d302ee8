package bootstrap

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/infra/messaging"
	"payment-gateway/internal/pkg/clock"
	"payment-gateway/internal/pkg/config"
	"payment-gateway/internal/usecase/notification"
	"payment-gateway/internal/usecase/shared"
	"payment-gateway/internal/usecase/workers"

	"go.uber.org/fx"
)

var RelayModule = fx.Module("workers/relay",
	fx.Provide(
		NewOutboxRelay,
	),
	fx.Invoke(startRelay),
)

var ConsumerModule = fx.Module("workers/consumer",
	fx.Invoke(startConsumers),
)

func NewOutboxRelay(
	uow shared.UnitOfWork,
	repo shared.OutboxRepository,
	publisher shared.Publisher,
	lock workers.SweepLock,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.Config,
) *workers.OutboxRelay {
	return workers.NewOutboxRelay(
		uow,
		repo,
		publisher,
		lock,
		clk,
		logger.With("component", "outbox_relay"),
		workers.RelayOptions{
			Topic:     event.PaymentEventsTopic,
			BatchSize: cfg.Relay.BatchSize,
			Interval:  cfg.Relay.Interval,
		},
	)
}

func startRelay(lc fx.Lifecycle, relay *workers.OutboxRelay) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				relay.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

type consumerParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Config      config.Config
	Logger      *slog.Logger
	Clock       clock.Clock
	Pipeline    *notification.Pipeline
	DeadLetters *notification.DeadLetterHandler
}

// startConsumers runs ConsumerWorkers readers for the base topic, each retry
// topic and the dead-letter topic, all in one consumer group.
func startConsumers(p consumerParams) {
	topics := event.Topics(event.PaymentEventsTopic, p.Config.Retry.Attempts)
	dlt := event.DeadLetterTopic(event.PaymentEventsTopic)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	var consumers []*messaging.KafkaConsumer

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ensureCtx, ensureCancel := context.WithTimeout(startCtx, 10*time.Second)
			defer ensureCancel()
			if err := messaging.EnsureTopics(ensureCtx, p.Config.Kafka, topics...); err != nil {
				p.Logger.Warn("could not ensure kafka topics", "error", err.Error())
			}

			for _, topic := range topics {
				var handler messaging.MessageHandler = p.Pipeline
				if topic == dlt {
					handler = p.DeadLetters
				}
				for i := 0; i < max(p.Config.Kafka.ConsumerWorkers, 1); i++ {
					c := messaging.NewKafkaConsumer(
						messaging.NewKafkaReader(p.Config.Kafka, topic),
						handler,
						p.Clock,
						p.Logger.With("component", "consumer", "topic", topic, "worker", i),
						messaging.ConsumerOptions{},
					)
					consumers = append(consumers, c)
					wg.Add(1)
					go func() {
						defer wg.Done()
						if err := c.Run(ctx); err != nil {
							p.Logger.Error("consumer stopped", "topic", topic, "error", err.Error())
						}
					}()
				}
			}
			p.Logger.Info("notification consumers started", "topics", topics)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			for _, c := range consumers {
				if err := c.Close(); err != nil {
					p.Logger.Warn("failed to close kafka reader", "error", err.Error())
				}
			}
			return nil
		},
	})
}
