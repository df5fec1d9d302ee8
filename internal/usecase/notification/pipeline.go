package notification

import (
	"context"
	"log/slog"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/shared"
)

// Pipeline handles messages from the base topic and every retry topic.
// A returned error means the message was neither handled nor escalated and
// must be redelivered by the transport.
type Pipeline struct {
	consumer *Consumer
	retries  *RetryCoordinator
	logger   *slog.Logger
}

func NewPipeline(consumer *Consumer, retries *RetryCoordinator, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		consumer: consumer,
		retries:  retries,
		logger:   logger,
	}
}

func (p *Pipeline) Handle(ctx context.Context, msg shared.Message) error {
	attempt := DeliveryAttempt(msg)

	outcome, err := p.consumer.Process(ctx, msg)
	if err == nil {
		p.logger.Debug("payment event handled",
			"topic", msg.Topic,
			"attempt", attempt,
			"outcome", string(outcome))
		return nil
	}

	if errs.IsAny(err, ErrUnrecognizedEvent, event.ErrMalformedEvent) {
		p.logger.Warn("dropping unrecognized payment event",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err.Error())
		return nil
	}

	dest, escErr := p.retries.Escalate(ctx, msg, err)
	if escErr != nil {
		return escErr
	}

	if dest.DeadLetter {
		p.logger.Error("payment event exhausted retries",
			"topic", msg.Topic,
			"attempt", attempt,
			"dead_letter_topic", dest.Topic,
			"error", err.Error())
	} else {
		p.logger.Warn("payment event scheduled for retry",
			"topic", msg.Topic,
			"attempt", attempt,
			"retry_topic", dest.Topic,
			"not_before", dest.NotBefore,
			"error", err.Error())
	}
	return nil
}
