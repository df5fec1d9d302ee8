package idempotency

import (
	"context"
	"time"

	"payment-gateway/internal/pkg/errs"
)

// Processing marks a key whose owner has not finished yet.
const Processing = "PROCESSING"

const (
	PaymentNamespace      = "idempotency:payment:"
	NotificationNamespace = "notif_processed:"
)

// Cache is the key-value store backing a Guard. SetIfAbsent must be a single
// atomic operation on the server.
type Cache interface {
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type ClaimResult struct {
	Claimed bool
	// Value is the marker already stored when the claim was lost.
	Value string
}

func (r ClaimResult) InFlight() bool {
	return !r.Claimed && r.Value == Processing
}

// Guard turns a namespaced key into a one-shot claim.
type Guard struct {
	cache     Cache
	namespace string
	ttl       time.Duration
}

func NewGuard(cache Cache, namespace string, ttl time.Duration) *Guard {
	return &Guard{
		cache:     cache,
		namespace: namespace,
		ttl:       ttl,
	}
}

func (g *Guard) Claim(ctx context.Context, key string) (ClaimResult, error) {
	if key == "" {
		return ClaimResult{}, errs.ErrIdempotencyKeyRequired
	}
	k := g.namespace + key

	claimed, err := g.cache.SetIfAbsent(ctx, k, Processing, g.ttl)
	if err != nil {
		return ClaimResult{}, errs.Mark(errs.Wrap(err, "claim idempotency key"), errs.ErrIdempotencyCheckFailed)
	}
	if claimed {
		return ClaimResult{Claimed: true}, nil
	}

	value, found, err := g.cache.Get(ctx, k)
	if err != nil {
		return ClaimResult{}, errs.Mark(errs.Wrap(err, "read idempotency key"), errs.ErrIdempotencyCheckFailed)
	}
	if found {
		return ClaimResult{Value: value}, nil
	}

	// The holder released or the marker expired between the two calls.
	claimed, err = g.cache.SetIfAbsent(ctx, k, Processing, g.ttl)
	if err != nil {
		return ClaimResult{}, errs.Mark(errs.Wrap(err, "claim idempotency key"), errs.ErrIdempotencyCheckFailed)
	}
	if claimed {
		return ClaimResult{Claimed: true}, nil
	}
	return ClaimResult{Value: Processing}, nil
}

// Finalize replaces the sentinel with the final value and restarts the TTL.
func (g *Guard) Finalize(ctx context.Context, key, value string) error {
	if err := g.cache.Set(ctx, g.namespace+key, value, g.ttl); err != nil {
		return errs.Mark(errs.Wrap(err, "finalize idempotency key"), errs.ErrIdempotencyCheckFailed)
	}
	return nil
}

func (g *Guard) Release(ctx context.Context, key string) error {
	if err := g.cache.Delete(ctx, g.namespace+key); err != nil {
		return errs.Mark(errs.Wrap(err, "release idempotency key"), errs.ErrIdempotencyCheckFailed)
	}
	return nil
}
