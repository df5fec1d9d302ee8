package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/domain/outbox"
	"payment-gateway/internal/infra"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
	"payment-gateway/internal/pkg/clock"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrRelayListFailed = errs.New("failed to list unprocessed outbox entries")

// SweepLock excludes relays running in other processes.
type SweepLock interface {
	TryAcquire(ctx context.Context) (release func(), ok bool, err error)
}

type RelayOptions struct {
	Topic     string
	BatchSize int
	Interval  time.Duration
}

type SweepReport struct {
	Published int
	Failed    int
	// Deferred counts entries held back because an earlier entry of the
	// same aggregate failed in this sweep.
	Deferred int
	Skipped  bool
}

type OutboxRelay struct {
	uow       shared.UnitOfWork
	repo      shared.OutboxRepository
	publisher shared.Publisher
	lock      SweepLock
	clock     clock.Clock
	logger    *slog.Logger
	opts      RelayOptions

	running sync.Mutex
}

// NewOutboxRelay accepts a nil lock for single-replica deployments.
func NewOutboxRelay(
	uow shared.UnitOfWork,
	repo shared.OutboxRepository,
	publisher shared.Publisher,
	lock SweepLock,
	clock clock.Clock,
	logger *slog.Logger,
	opts RelayOptions,
) *OutboxRelay {
	if opts.Topic == "" {
		opts.Topic = event.PaymentEventsTopic
	}
	if opts.Interval <= 0 {
		opts.Interval = 5 * time.Second
	}
	return &OutboxRelay{
		uow:       uow,
		repo:      repo,
		publisher: publisher,
		lock:      lock,
		clock:     clock,
		logger:    logger,
		opts:      opts,
	}
}

func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", "interval", r.opts.Interval.String(), "topic", r.opts.Topic)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			report, err := r.Sweep(ctx)
			if err != nil {
				r.logger.Error("outbox sweep failed", "error", err.Error())
				continue
			}
			if report.Published > 0 || report.Failed > 0 {
				r.logger.Info("outbox sweep finished",
					"published", report.Published,
					"failed", report.Failed,
					"deferred", report.Deferred)
			}
		}
	}
}

// Sweep publishes pending entries in insertion order. An entry is marked
// processed only after the broker acknowledged it. A sweep that starts while
// another is running returns immediately with Skipped set.
func (r *OutboxRelay) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport

	if !r.running.TryLock() {
		r.logger.Debug("outbox sweep already running, skipping tick")
		report.Skipped = true
		return report, nil
	}
	defer r.running.Unlock()

	if r.lock != nil {
		release, ok, err := r.lock.TryAcquire(ctx)
		if err != nil {
			return report, err
		}
		if !ok {
			r.logger.Debug("outbox sweep held by another replica")
			report.Skipped = true
			return report, nil
		}
		defer release()
	}

	var entries []*outbox.Entry
	err := r.uow.WithDB(ctx, func(ctx context.Context, db sqlc.DBTX) error {
		var err error
		entries, err = r.repo.ListUnprocessed(ctx, db, r.opts.BatchSize)
		return err
	})
	if err != nil {
		return report, errs.Mark(err, ErrRelayListFailed)
	}

	blocked := make(map[uuid.UUID]struct{})
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		if _, ok := blocked[entry.AggregateID()]; ok {
			report.Deferred++
			continue
		}

		if err := r.publish(ctx, entry); err != nil {
			r.logger.Error("failed to publish outbox entry",
				"outbox_id", entry.ID(),
				"transaction_id", entry.AggregateID().String(),
				"topic", r.opts.Topic,
				"error", err.Error())
			blocked[entry.AggregateID()] = struct{}{}
			report.Failed++
			continue
		}

		r.markProcessed(ctx, entry)
		report.Published++
	}

	return report, nil
}

func (r *OutboxRelay) publish(ctx context.Context, entry *outbox.Entry) error {
	return r.publisher.Publish(ctx, shared.Message{
		Topic: r.opts.Topic,
		Key:   []byte(entry.AggregateID().String()),
		Value: entry.Payload(),
		Headers: map[string]string{
			event.HeaderEventType: entry.EventType().String(),
		},
	})
}

// A failed mark leaves the entry pending; the next sweep republishes it and
// consumers deduplicate by transaction id.
func (r *OutboxRelay) markProcessed(ctx context.Context, entry *outbox.Entry) {
	err := r.uow.WithDB(ctx, func(ctx context.Context, db sqlc.DBTX) error {
		return r.repo.MarkProcessed(ctx, db, entry.ID(), r.clock.Now())
	})
	switch {
	case err == nil:
	case infra.IsKind(err, infra.KindNotFound):
		r.logger.Debug("outbox entry already processed", "outbox_id", entry.ID())
	default:
		r.logger.Warn("published outbox entry not marked processed",
			"outbox_id", entry.ID(),
			"transaction_id", entry.AggregateID().String(),
			"error", err.Error())
	}
}
