//go:build unit

package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/pkg/clock"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/notification"
	"payment-gateway/internal/usecase/shared"
	sharedmock "payment-gateway/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var defaultPolicy = notification.RetryPolicy{
	Attempts:     3,
	InitialDelay: 2 * time.Second,
	Multiplier:   2,
	MaxDelay:     time.Minute,
}

func TestRetryPolicy_Delay(t *testing.T) {
	assert.Equal(t, 2*time.Second, defaultPolicy.Delay(0))
	assert.Equal(t, 4*time.Second, defaultPolicy.Delay(1))
	assert.Equal(t, 8*time.Second, defaultPolicy.Delay(2))

	capped := notification.RetryPolicy{InitialDelay: time.Second, Multiplier: 10, MaxDelay: 5 * time.Second}
	assert.Equal(t, 5*time.Second, capped.Delay(3))
}

func TestRetryCoordinator_Next(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	c := notification.NewRetryCoordinator(nil, defaultPolicy, event.PaymentEventsTopic, clock.NewMockClock(now))

	cases := []struct {
		name    string
		attempt string
		want    notification.Destination
	}{
		{
			name: "first delivery goes to retry-0",
			want: notification.Destination{Topic: "payment-events-retry-0", Attempt: 2, NotBefore: now.Add(2 * time.Second)},
		},
		{
			name:    "second delivery goes to retry-1",
			attempt: "2",
			want:    notification.Destination{Topic: "payment-events-retry-1", Attempt: 3, NotBefore: now.Add(4 * time.Second)},
		},
		{
			name:    "third delivery is dead-lettered",
			attempt: "3",
			want:    notification.Destination{Topic: "payment-events-dlt", Attempt: 3, DeadLetter: true},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := shared.Message{Topic: event.PaymentEventsTopic}
			if tc.attempt != "" {
				msg.Headers = map[string]string{event.HeaderAttempt: tc.attempt}
			}
			assert.Equal(t, tc.want, c.Next(msg))
		})
	}
}

func TestRetryCoordinator_Escalate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("retry carries headers forward", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := sharedmock.NewMockPublisher(ctrl)
		c := notification.NewRetryCoordinator(pub, defaultPolicy, event.PaymentEventsTopic, clock.NewMockClock(now))

		msg := shared.Message{
			Topic:   event.PaymentEventsTopic,
			Key:     []byte("tx-1"),
			Value:   []byte(`{}`),
			Headers: map[string]string{event.HeaderEventType: "PAYMENT_SUCCESS"},
		}
		pub.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, out shared.Message) error {
			assert.Equal(t, "payment-events-retry-0", out.Topic)
			assert.Equal(t, []byte("tx-1"), out.Key)
			assert.Equal(t, []byte(`{}`), out.Value)
			assert.Equal(t, "PAYMENT_SUCCESS", out.Header(event.HeaderEventType))
			assert.Equal(t, "payment-events", out.Header(event.HeaderOriginalTopic))
			assert.Equal(t, "2", out.Header(event.HeaderAttempt))
			assert.Equal(t, "smtp down", out.Header(event.HeaderLastError))
			assert.True(t, event.ParseNotBefore(out.Header(event.HeaderNotBefore)).Equal(now.Add(2*time.Second)))
			return nil
		})

		dest, err := c.Escalate(ctx, msg, errors.New("smtp down"))
		require.NoError(t, err)
		assert.False(t, dest.DeadLetter)
		assert.NotContains(t, msg.Headers, event.HeaderAttempt, "input headers are not mutated")
	})

	t.Run("dead letter drops the delay header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := sharedmock.NewMockPublisher(ctrl)
		c := notification.NewRetryCoordinator(pub, defaultPolicy, event.PaymentEventsTopic, clock.NewMockClock(now))

		msg := shared.Message{
			Topic: "payment-events-retry-1",
			Headers: map[string]string{
				event.HeaderAttempt:       "3",
				event.HeaderOriginalTopic: "payment-events",
				event.HeaderNotBefore:     event.FormatNotBefore(now),
			},
		}
		pub.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, out shared.Message) error {
			assert.Equal(t, "payment-events-dlt", out.Topic)
			assert.Equal(t, "payment-events", out.Header(event.HeaderOriginalTopic))
			assert.Empty(t, out.Header(event.HeaderNotBefore))
			return nil
		})

		dest, err := c.Escalate(ctx, msg, errors.New("still down"))
		require.NoError(t, err)
		assert.True(t, dest.DeadLetter)
	})

	t.Run("publish failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := sharedmock.NewMockPublisher(ctrl)
		c := notification.NewRetryCoordinator(pub, defaultPolicy, event.PaymentEventsTopic, clock.NewMockClock(now))

		pub.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("broker down"))

		_, err := c.Escalate(ctx, shared.Message{Topic: event.PaymentEventsTopic}, errors.New("x"))
		require.Error(t, err)
		assert.True(t, errs.Is(err, notification.ErrEscalationFailed))
	})
}
