//go:build unit

package messaging_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/infra/messaging"
	"payment-gateway/internal/pkg/clock"
	"payment-gateway/internal/usecase/shared"
	messagingmock "payment-gateway/tests/mock/messaging"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fastRetry = messaging.ConsumerOptions{Backoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}

// expectFetches returns msgs in order and then blocks until ctx is cancelled.
func expectFetches(reader *messagingmock.MockMessageReader, msgs ...kafka.Message) {
	calls := make([]any, 0, len(msgs)+1)
	for _, m := range msgs {
		calls = append(calls, reader.EXPECT().FetchMessage(gomock.Any()).Return(m, nil))
	}
	calls = append(calls, reader.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		}).AnyTimes())
	gomock.InOrder(calls...)
}

func runUntil(t *testing.T, c *messaging.KafkaConsumer, done <-chan struct{}) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not reach the expected state")
	}
	cancel()
	require.NoError(t, <-errCh)
}

func TestKafkaConsumer_CommitsAfterHandlerSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := messagingmock.NewMockMessageReader(ctrl)
	handler := messagingmock.NewMockMessageHandler(ctrl)

	m := kafka.Message{
		Topic:     "payment-events",
		Partition: 2,
		Offset:    17,
		Key:       []byte("tx-1"),
		Value:     []byte(`{}`),
		Headers:   []kafka.Header{{Key: event.HeaderEventType, Value: []byte("PAYMENT_SUCCESS")}},
	}
	expectFetches(reader, m)

	done := make(chan struct{})
	gomock.InOrder(
		handler.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg shared.Message) error {
			assert.Equal(t, "payment-events", msg.Topic)
			assert.Equal(t, 2, msg.Partition)
			assert.Equal(t, int64(17), msg.Offset)
			assert.Equal(t, "PAYMENT_SUCCESS", msg.Header(event.HeaderEventType))
			return nil
		}),
		reader.EXPECT().CommitMessages(gomock.Any(), m).DoAndReturn(func(context.Context, ...kafka.Message) error {
			close(done)
			return nil
		}),
	)

	runUntil(t, messaging.NewKafkaConsumer(reader, handler, clock.NewRealClock(), discardLogger(), fastRetry), done)
}

func TestKafkaConsumer_RetriesHandlerInPlaceBeforeCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := messagingmock.NewMockMessageReader(ctrl)
	handler := messagingmock.NewMockMessageHandler(ctrl)

	m := kafka.Message{Topic: "payment-events", Offset: 1}
	expectFetches(reader, m)

	done := make(chan struct{})
	gomock.InOrder(
		handler.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(errors.New("broker down")).Times(2),
		handler.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil),
		reader.EXPECT().CommitMessages(gomock.Any(), m).Return(errors.New("rebalance")),
		reader.EXPECT().CommitMessages(gomock.Any(), m).DoAndReturn(func(context.Context, ...kafka.Message) error {
			close(done)
			return nil
		}),
	)

	runUntil(t, messaging.NewKafkaConsumer(reader, handler, clock.NewRealClock(), discardLogger(), fastRetry), done)
}

func TestKafkaConsumer_HoldsMessageUntilNotBefore(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := messagingmock.NewMockMessageReader(ctrl)
	handler := messagingmock.NewMockMessageHandler(ctrl)

	clk := clock.NewRealClock()
	notBefore := clk.Now().Add(80 * time.Millisecond)
	m := kafka.Message{
		Topic:   "payment-events-retry-0",
		Headers: []kafka.Header{{Key: event.HeaderNotBefore, Value: []byte(event.FormatNotBefore(notBefore))}},
	}
	expectFetches(reader, m)

	done := make(chan struct{})
	handler.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, shared.Message) error {
		assert.False(t, clk.Now().Before(notBefore), "handled before the retry delay elapsed")
		return nil
	})
	reader.EXPECT().CommitMessages(gomock.Any(), m).DoAndReturn(func(context.Context, ...kafka.Message) error {
		close(done)
		return nil
	})

	runUntil(t, messaging.NewKafkaConsumer(reader, handler, clk, discardLogger(), fastRetry), done)
}

func TestKafkaConsumer_StopsWhileHandlerKeepsFailing(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := messagingmock.NewMockMessageReader(ctrl)
	handler := messagingmock.NewMockMessageHandler(ctrl)

	expectFetches(reader, kafka.Message{Topic: "payment-events"})

	done := make(chan struct{})
	var calls int
	handler.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, shared.Message) error {
		calls++
		if calls == 3 {
			close(done)
		}
		return errors.New("still failing")
	}).MinTimes(3)

	// no commit is expected: the offset must stay uncommitted
	runUntil(t, messaging.NewKafkaConsumer(reader, handler, clock.NewRealClock(), discardLogger(), fastRetry), done)
}

func TestKafkaConsumer_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := messagingmock.NewMockMessageReader(ctrl)
	reader.EXPECT().Close().Return(nil)

	c := messaging.NewKafkaConsumer(reader, messagingmock.NewMockMessageHandler(ctrl), clock.NewRealClock(), discardLogger(), messaging.ConsumerOptions{})
	require.NoError(t, c.Close())
}
