//go:build unit

package idempotency_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"payment-gateway/internal/infra/cache"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/idempotency"
	idempotencymock "payment-gateway/tests/mock/idempotency"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const ttl = 24 * time.Hour

func TestGuard_Claim(t *testing.T) {
	ctx := context.Background()
	key := idempotency.PaymentNamespace + "abc"

	tests := []struct {
		name      string
		setupMock func(m *idempotencymock.MockCache)
		want      idempotency.ClaimResult
		inFlight  bool
		errIs     error
	}{
		{
			name: "fresh key is claimed",
			setupMock: func(m *idempotencymock.MockCache) {
				m.EXPECT().SetIfAbsent(ctx, key, idempotency.Processing, ttl).Return(true, nil)
			},
			want: idempotency.ClaimResult{Claimed: true},
		},
		{
			name: "key held by an in-flight request",
			setupMock: func(m *idempotencymock.MockCache) {
				m.EXPECT().SetIfAbsent(ctx, key, idempotency.Processing, ttl).Return(false, nil)
				m.EXPECT().Get(ctx, key).Return(idempotency.Processing, true, nil)
			},
			want:     idempotency.ClaimResult{Value: idempotency.Processing},
			inFlight: true,
		},
		{
			name: "completed key returns the stored value",
			setupMock: func(m *idempotencymock.MockCache) {
				m.EXPECT().SetIfAbsent(ctx, key, idempotency.Processing, ttl).Return(false, nil)
				m.EXPECT().Get(ctx, key).Return(`{"status":"SUCCESS"}`, true, nil)
			},
			want: idempotency.ClaimResult{Value: `{"status":"SUCCESS"}`},
		},
		{
			name: "key vanished between calls and is claimed on retry",
			setupMock: func(m *idempotencymock.MockCache) {
				gomock.InOrder(
					m.EXPECT().SetIfAbsent(ctx, key, idempotency.Processing, ttl).Return(false, nil),
					m.EXPECT().Get(ctx, key).Return("", false, nil),
					m.EXPECT().SetIfAbsent(ctx, key, idempotency.Processing, ttl).Return(true, nil),
				)
			},
			want: idempotency.ClaimResult{Claimed: true},
		},
		{
			name: "key vanished and was taken again",
			setupMock: func(m *idempotencymock.MockCache) {
				gomock.InOrder(
					m.EXPECT().SetIfAbsent(ctx, key, idempotency.Processing, ttl).Return(false, nil),
					m.EXPECT().Get(ctx, key).Return("", false, nil),
					m.EXPECT().SetIfAbsent(ctx, key, idempotency.Processing, ttl).Return(false, nil),
				)
			},
			want:     idempotency.ClaimResult{Value: idempotency.Processing},
			inFlight: true,
		},
		{
			name: "cache unavailable",
			setupMock: func(m *idempotencymock.MockCache) {
				m.EXPECT().SetIfAbsent(ctx, key, idempotency.Processing, ttl).Return(false, errors.New("connection refused"))
			},
			errIs: errs.ErrIdempotencyCheckFailed,
		},
		{
			name: "read fails after lost claim",
			setupMock: func(m *idempotencymock.MockCache) {
				m.EXPECT().SetIfAbsent(ctx, key, idempotency.Processing, ttl).Return(false, nil)
				m.EXPECT().Get(ctx, key).Return("", false, errors.New("timeout"))
			},
			errIs: errs.ErrIdempotencyCheckFailed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := idempotencymock.NewMockCache(ctrl)
			tc.setupMock(m)
			guard := idempotency.NewGuard(m, idempotency.PaymentNamespace, ttl)

			got, err := guard.Claim(ctx, "abc")
			if tc.errIs != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.errIs))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.inFlight, got.InFlight())
		})
	}
}

func TestGuard_EmptyKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	guard := idempotency.NewGuard(idempotencymock.NewMockCache(ctrl), idempotency.PaymentNamespace, ttl)

	_, err := guard.Claim(context.Background(), "")
	assert.True(t, errs.Is(err, errs.ErrIdempotencyKeyRequired))
}

func TestGuard_FinalizeAndRelease(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	m := idempotencymock.NewMockCache(ctrl)
	guard := idempotency.NewGuard(m, idempotency.NotificationNamespace, ttl)
	key := idempotency.NotificationNamespace + "tx-1"

	m.EXPECT().Set(ctx, key, "PROCESSED", ttl).Return(nil)
	require.NoError(t, guard.Finalize(ctx, "tx-1", "PROCESSED"))

	m.EXPECT().Delete(ctx, key).Return(nil)
	require.NoError(t, guard.Release(ctx, "tx-1"))

	m.EXPECT().Set(ctx, key, "PROCESSED", ttl).Return(errors.New("down"))
	err := guard.Finalize(ctx, "tx-1", "PROCESSED")
	assert.True(t, errs.Is(err, errs.ErrIdempotencyCheckFailed))

	m.EXPECT().Delete(ctx, key).Return(errors.New("down"))
	err = guard.Release(ctx, "tx-1")
	assert.True(t, errs.Is(err, errs.ErrIdempotencyCheckFailed))
}

func TestGuard_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	guard := idempotency.NewGuard(cache.NewRedisStore(client), idempotency.PaymentNamespace, ttl)

	const workers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
		waiting int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := guard.Claim(context.Background(), "same-key")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if res.Claimed {
				winners++
			} else if res.InFlight() {
				waiting++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, workers-1, waiting)
	assert.Equal(t, ttl, mr.TTL(idempotency.PaymentNamespace+"same-key"))
}
