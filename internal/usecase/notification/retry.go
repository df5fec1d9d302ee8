package notification

import (
	"context"
	"math"
	"strconv"
	"time"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/pkg/clock"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/shared"
)

var ErrEscalationFailed = errs.New("failed to publish retry or dead letter")

// RetryPolicy counts deliveries, not retries: Attempts=3 means the original
// delivery plus two redeliveries.
type RetryPolicy struct {
	Attempts     int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
}

// Delay is the wait before retry index i (0-based).
func (p RetryPolicy) Delay(i int) time.Duration {
	d := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(i))
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

type Destination struct {
	Topic      string
	Attempt    int
	NotBefore  time.Time
	DeadLetter bool
}

// RetryCoordinator republishes a failed message on the next rung of the
// ladder, or on the dead-letter topic once attempts are spent.
type RetryCoordinator struct {
	publisher shared.Publisher
	policy    RetryPolicy
	baseTopic string
	clock     clock.Clock
}

func NewRetryCoordinator(publisher shared.Publisher, policy RetryPolicy, baseTopic string, clock clock.Clock) *RetryCoordinator {
	return &RetryCoordinator{
		publisher: publisher,
		policy:    policy,
		baseTopic: baseTopic,
		clock:     clock,
	}
}

// Next computes where a message goes after the delivery in msg failed.
func (c *RetryCoordinator) Next(msg shared.Message) Destination {
	next := DeliveryAttempt(msg) + 1
	if next > c.policy.Attempts {
		return Destination{
			Topic:      event.DeadLetterTopic(c.baseTopic),
			Attempt:    next - 1,
			DeadLetter: true,
		}
	}
	idx := next - 2
	return Destination{
		Topic:     event.RetryTopic(c.baseTopic, idx),
		Attempt:   next,
		NotBefore: c.clock.Now().Add(c.policy.Delay(idx)),
	}
}

func (c *RetryCoordinator) Escalate(ctx context.Context, msg shared.Message, cause error) (Destination, error) {
	dest := c.Next(msg)

	headers := make(map[string]string, len(msg.Headers)+4)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[event.HeaderOriginalTopic] = originalTopic(msg)
	headers[event.HeaderAttempt] = strconv.Itoa(dest.Attempt)
	if cause != nil {
		headers[event.HeaderLastError] = cause.Error()
	}
	if dest.DeadLetter {
		delete(headers, event.HeaderNotBefore)
	} else {
		headers[event.HeaderNotBefore] = event.FormatNotBefore(dest.NotBefore)
	}

	err := c.publisher.Publish(ctx, shared.Message{
		Topic:   dest.Topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	})
	if err != nil {
		return dest, errs.Mark(errs.Wrapf(err, "publish to %s", dest.Topic), ErrEscalationFailed)
	}
	return dest, nil
}

// DeliveryAttempt is 1 for a message read from the base topic.
func DeliveryAttempt(msg shared.Message) int {
	return event.ParseAttempt(msg.Header(event.HeaderAttempt))
}

func originalTopic(msg shared.Message) string {
	if t := msg.Header(event.HeaderOriginalTopic); t != "" {
		return t
	}
	return msg.Topic
}
