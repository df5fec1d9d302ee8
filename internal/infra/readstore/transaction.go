package readstore

import (
	"context"

	"payment-gateway/internal/infra"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
	"payment-gateway/internal/pkg/pgconv"
	"payment-gateway/internal/usecase/queries"

	"github.com/google/uuid"
)

type TransactionReadQueries interface {
	GetTransactionByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Transactions, error)
}

type TransactionReadStore struct {
	queries TransactionReadQueries
	db      sqlc.DBTX
}

func NewTransactionReadStore(queries TransactionReadQueries, db sqlc.DBTX) *TransactionReadStore {
	return &TransactionReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *TransactionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	row, err := r.queries.GetTransactionByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find transaction by ID", err)
	}
	return toPaymentView(row)
}

func toPaymentView(row sqlc.Transactions) (*queries.PaymentView, error) {
	amount, err := pgconv.DecimalFromNumeric(row.Amount)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored amount", err)
	}
	return &queries.PaymentView{
		TransactionID:      row.ID,
		Amount:             amount,
		Currency:           row.Currency,
		Status:             row.Status,
		SourceAccount:      pgconv.StringPtrFromPgtype(row.SourceAccount),
		DestinationAccount: pgconv.StringPtrFromPgtype(row.DestinationAccount),
		CustomerEmail:      pgconv.StringPtrFromPgtype(row.CustomerEmail),
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
	}, nil
}
