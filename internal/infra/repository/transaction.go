package repository

import (
	"context"

	"payment-gateway/internal/domain/payment"
	"payment-gateway/internal/infra"
	"payment-gateway/internal/infra/repository/converter"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
)

type TransactionWriteQueries interface {
	CreateTransaction(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateTransactionParams) (sqlc.Transactions, error)
}

type TransactionRepository struct {
	queries TransactionWriteQueries
}

func NewTransactionRepository(queries TransactionWriteQueries) *TransactionRepository {
	return &TransactionRepository{
		queries: queries,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx sqlc.DBTX, t *payment.Transaction) error {
	params := converter.TransactionToCreateParams(t)
	if _, err := r.queries.CreateTransaction(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create transaction", err)
	}
	return nil
}
