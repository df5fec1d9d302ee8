package shared

import (
	"context"
	"time"

	"payment-gateway/internal/domain/outbox"
	"payment-gateway/internal/domain/payment"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
}

type Tx interface {
	Transactions() TransactionRepository
	Outbox() OutboxRepository
	DB() sqlc.DBTX
}

type TransactionRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, t *payment.Transaction) error
}

type OutboxRepository interface {
	Append(ctx context.Context, tx sqlc.DBTX, entry *outbox.Entry) (int64, error)
	ListUnprocessed(ctx context.Context, db sqlc.DBTX, limit int) ([]*outbox.Entry, error)
	// MarkProcessed returns KindNotFound when the entry is missing or already processed.
	MarkProcessed(ctx context.Context, db sqlc.DBTX, id int64, at time.Time) error
}

type DeadLetterRecord struct {
	Topic         string
	Partition     int
	Offset        int64
	OriginalTopic string
	Key           string
	Payload       []byte
	ErrorMessage  string
	ReceivedAt    time.Time
}

type DeadLetterRepository interface {
	// Save reports false when the record at this topic position was already stored.
	Save(ctx context.Context, db sqlc.DBTX, rec DeadLetterRecord) (bool, error)
}
