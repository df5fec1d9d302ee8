package repository

import (
	"context"
	"math"
	"time"

	"payment-gateway/internal/domain/outbox"
	"payment-gateway/internal/infra"
	"payment-gateway/internal/infra/repository/converter"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
	"payment-gateway/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OutboxQueries interface {
	CreateOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOutboxEventParams) (int64, error)
	GetOutboxEventsByAggregateID(ctx context.Context, db sqlc.DBTX, aggregateID uuid.UUID) ([]sqlc.OutboxEvents, error)
	ListUnprocessedOutboxEvents(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.OutboxEvents, error)
	MarkOutboxEventProcessed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventProcessedParams) (int64, error)
}

type OutboxRepository struct {
	queries OutboxQueries
}

func NewOutboxRepository(queries OutboxQueries) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
	}
}

func (r *OutboxRepository) Append(ctx context.Context, tx sqlc.DBTX, entry *outbox.Entry) (int64, error) {
	id, err := r.queries.CreateOutboxEvent(ctx, tx, converter.OutboxEntryToCreateParams(entry))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to append outbox event", err)
	}
	return id, nil
}

// ListUnprocessed returns entries in insertion order.
func (r *OutboxRepository) ListUnprocessed(ctx context.Context, db sqlc.DBTX, limit int) ([]*outbox.Entry, error) {
	if limit <= 0 || limit > math.MaxInt32 {
		limit = math.MaxInt32
	}
	// #nosec G115 -- bounded above
	rows, err := r.queries.ListUnprocessedOutboxEvents(ctx, db, int32(limit))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list unprocessed outbox events", err)
	}

	entries := make([]*outbox.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, converter.OutboxEntryFromRow(row))
	}
	return entries, nil
}

// ListByAggregate returns every entry written for one aggregate, processed or not.
func (r *OutboxRepository) ListByAggregate(ctx context.Context, db sqlc.DBTX, aggregateID uuid.UUID) ([]*outbox.Entry, error) {
	rows, err := r.queries.GetOutboxEventsByAggregateID(ctx, db, aggregateID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list outbox events by aggregate", err)
	}

	entries := make([]*outbox.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, converter.OutboxEntryFromRow(row))
	}
	return entries, nil
}

func (r *OutboxRepository) MarkProcessed(ctx context.Context, db sqlc.DBTX, id int64, at time.Time) error {
	affected, err := r.queries.MarkOutboxEventProcessed(ctx, db, sqlc.MarkOutboxEventProcessedParams{
		ID:          id,
		ProcessedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox event processed", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("outbox event not found or already processed", nil, infra.KindNotFound)
	}
	return nil
}
