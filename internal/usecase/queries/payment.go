package queries

import (
	"context"

	"payment-gateway/internal/infra"
	"payment-gateway/internal/pkg/errs"

	"github.com/google/uuid"
)

type PaymentQueries interface {
	GetByTransactionID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
}

type PaymentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
}

type paymentQueriesImpl struct {
	readStore PaymentReadStore
}

func NewPaymentQueries(readStore PaymentReadStore) PaymentQueries {
	return &paymentQueriesImpl{
		readStore: readStore,
	}
}

func (q *paymentQueriesImpl) GetByTransactionID(ctx context.Context, id uuid.UUID) (*PaymentView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrPaymentNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
