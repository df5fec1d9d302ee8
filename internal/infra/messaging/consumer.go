package messaging

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/pkg/clock"
	"payment-gateway/internal/pkg/config"
	"payment-gateway/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

type MessageHandler interface {
	Handle(ctx context.Context, msg shared.Message) error
}

// MessageReader is the subset of *kafka.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ConsumerOptions struct {
	// Backoff between attempts when the handler or the broker fails.
	Backoff    time.Duration
	MaxBackoff time.Duration
}

// KafkaConsumer commits an offset only after the handler returned nil, so a
// crash mid-handling redelivers the message. Messages carrying a not-before
// header are held until that time, which is how retry topics delay
// redelivery without the failing handler sleeping.
type KafkaConsumer struct {
	reader  MessageReader
	handler MessageHandler
	clock   clock.Clock
	logger  *slog.Logger
	opts    ConsumerOptions
}

func NewKafkaReader(cfg config.KafkaConfig, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.ConsumerGroup,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
		StartOffset: kafka.FirstOffset,
		Dialer:      &kafka.Dialer{ClientID: cfg.ClientID, Timeout: 10 * time.Second},
	})
}

func NewKafkaConsumer(reader MessageReader, handler MessageHandler, clk clock.Clock, logger *slog.Logger, opts ConsumerOptions) *KafkaConsumer {
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}
	if opts.MaxBackoff < opts.Backoff {
		opts.MaxBackoff = 30 * time.Second
	}
	return &KafkaConsumer{
		reader:  reader,
		handler: handler,
		clock:   clk,
		logger:  logger,
		opts:    opts,
	}
}

// Run returns nil when ctx is cancelled.
func (c *KafkaConsumer) Run(ctx context.Context) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("failed to fetch message", "error", err.Error())
			if !sleep(ctx, c.opts.Backoff) {
				return nil
			}
			continue
		}

		msg := fromKafkaMessage(m)
		if !c.waitUntil(ctx, event.ParseNotBefore(msg.Header(event.HeaderNotBefore))) {
			return nil
		}
		if !c.handle(ctx, msg) {
			return nil
		}
		if !c.commit(ctx, m) {
			return nil
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

// handle retries in place; the reader does not rewind an uncommitted fetch.
func (c *KafkaConsumer) handle(ctx context.Context, msg shared.Message) bool {
	backoff := c.opts.Backoff
	for {
		err := c.handler.Handle(ctx, msg)
		if err == nil {
			return true
		}
		c.logger.Error("message handler failed, retrying",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"backoff", backoff.String(),
			"error", err.Error())
		if !sleep(ctx, backoff) {
			return false
		}
		backoff = min(backoff*2, c.opts.MaxBackoff)
	}
}

func (c *KafkaConsumer) commit(ctx context.Context, m kafka.Message) bool {
	for {
		err := c.reader.CommitMessages(ctx, m)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		c.logger.Warn("failed to commit offset",
			"topic", m.Topic,
			"partition", m.Partition,
			"offset", m.Offset,
			"error", err.Error())
		if !sleep(ctx, c.opts.Backoff) {
			return false
		}
	}
}

func (c *KafkaConsumer) waitUntil(ctx context.Context, notBefore time.Time) bool {
	if notBefore.IsZero() {
		return true
	}
	return sleep(ctx, notBefore.Sub(c.clock.Now()))
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
