package converter

import (
	"payment-gateway/internal/domain/outbox"
	"payment-gateway/internal/domain/payment"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
	"payment-gateway/internal/pkg/pgconv"
)

func TransactionToCreateParams(t *payment.Transaction) sqlc.CreateTransactionParams {
	return sqlc.CreateTransactionParams{
		ID:                 t.ID(),
		Amount:             pgconv.DecimalToNumeric(t.Amount().Decimal()),
		Currency:           t.Currency().String(),
		Status:             t.Status().String(),
		SourceAccount:      pgconv.OptionalStringToPgtype(t.SourceAccount().String()),
		DestinationAccount: pgconv.OptionalStringToPgtype(t.DestinationAccount().String()),
		CustomerEmail:      pgconv.OptionalStringToPgtype(t.CustomerEmail()),
		IdempotencyKey:     pgconv.StringPtrToPgtype(t.IdempotencyKey()),
		CreatedAt:          pgconv.TimeToPgtype(t.CreatedAt()),
	}
}

func OutboxEntryToCreateParams(e *outbox.Entry) sqlc.CreateOutboxEventParams {
	return sqlc.CreateOutboxEventParams{
		AggregateID: e.AggregateID(),
		EventType:   e.EventType().String(),
		Payload:     e.Payload(),
		CreatedAt:   pgconv.TimeToPgtype(e.CreatedAt()),
	}
}

func OutboxEntryFromRow(row sqlc.OutboxEvents) *outbox.Entry {
	return outbox.Reconstruct(
		row.ID,
		row.AggregateID,
		outbox.EventType(row.EventType),
		row.Payload,
		pgconv.TimeFromPgtype(row.CreatedAt),
		row.Processed,
	)
}
