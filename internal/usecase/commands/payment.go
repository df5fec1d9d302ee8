package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/idempotency"
)

type SubmitPaymentResult struct {
	// Body is the serialized PaymentResult; replays return the cached bytes unchanged.
	Body       []byte
	IsReplayed bool
}

type IdempotencyGuard interface {
	Claim(ctx context.Context, key string) (idempotency.ClaimResult, error)
	Finalize(ctx context.Context, key, value string) error
	Release(ctx context.Context, key string) error
}

type PaymentCommands interface {
	SubmitPayment(ctx context.Context, params ProcessPaymentParams, idempotencyKey string) (*SubmitPaymentResult, error)
}

type paymentCommandsImpl struct {
	guard    IdempotencyGuard
	executor PaymentExecutor
}

func NewPaymentCommands(guard IdempotencyGuard, executor PaymentExecutor) PaymentCommands {
	return &paymentCommandsImpl{
		guard:    guard,
		executor: executor,
	}
}

func (c *paymentCommandsImpl) SubmitPayment(ctx context.Context, params ProcessPaymentParams, idempotencyKey string) (*SubmitPaymentResult, error) {
	claim, err := c.guard.Claim(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if !claim.Claimed {
		if claim.InFlight() {
			return nil, errs.ErrIdempotencyInProgress
		}
		return &SubmitPaymentResult{Body: []byte(claim.Value), IsReplayed: true}, nil
	}

	result, err := c.executor.Process(ctx, params, idempotencyKey)
	if err != nil {
		c.release(ctx, idempotencyKey)
		return nil, err
	}

	body, err := json.Marshal(result)
	if err != nil {
		c.release(ctx, idempotencyKey)
		return nil, errs.Mark(err, errs.ErrEventSerialization)
	}

	// The payment is committed either way, so the result is cached even when the
	// caller has gone away. A lost finalize leaves the sentinel in place and
	// retries see "in progress" until the TTL lapses instead of executing twice.
	if err := c.guard.Finalize(context.WithoutCancel(ctx), idempotencyKey, string(body)); err != nil {
		slog.Warn("failed to cache payment result",
			"idempotency_key", idempotencyKey,
			"transaction_id", result.TransactionID.String(),
			"error", err.Error())
	}

	return &SubmitPaymentResult{Body: body}, nil
}

func (c *paymentCommandsImpl) release(ctx context.Context, key string) {
	if err := c.guard.Release(context.WithoutCancel(ctx), key); err != nil {
		slog.Error("failed to release idempotency key", "idempotency_key", key, "error", err.Error())
	}
}
