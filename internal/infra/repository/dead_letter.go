package repository

import (
	"context"

	"payment-gateway/internal/infra"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
	"payment-gateway/internal/pkg/pgconv"
	"payment-gateway/internal/usecase/shared"
)

type DeadLetterQueries interface {
	CreateDeadLetter(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateDeadLetterParams) (int64, error)
}

type DeadLetterRepository struct {
	queries DeadLetterQueries
}

func NewDeadLetterRepository(queries DeadLetterQueries) *DeadLetterRepository {
	return &DeadLetterRepository{
		queries: queries,
	}
}

func (r *DeadLetterRepository) Save(ctx context.Context, db sqlc.DBTX, rec shared.DeadLetterRecord) (bool, error) {
	affected, err := r.queries.CreateDeadLetter(ctx, db, sqlc.CreateDeadLetterParams{
		Topic:         rec.Topic,
		Partition:     int32(rec.Partition), // #nosec G115 -- kafka partitions are int32 on the wire
		KafkaOffset:   rec.Offset,
		OriginalTopic: rec.OriginalTopic,
		MessageKey:    pgconv.OptionalStringToPgtype(rec.Key),
		Payload:       rec.Payload,
		ErrorMessage:  pgconv.OptionalStringToPgtype(rec.ErrorMessage),
		ReceivedAt:    pgconv.TimeToPgtype(rec.ReceivedAt),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to save dead letter", err)
	}
	return affected > 0, nil
}
