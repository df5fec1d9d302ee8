//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"

	"payment-gateway/internal/infra"
	"payment-gateway/internal/infra/readstore"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
	"payment-gateway/tests/common/builder"
	readstoremock "payment-gateway/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTransactionReadStore_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the stored row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := readstoremock.NewMockTransactionReadQueries(ctrl)
		store := readstore.NewTransactionReadStore(q, nil)

		b := builder.NewPaymentBuilder().WithAmount("42.1234").WithCustomerEmail("")
		q.EXPECT().GetTransactionByID(ctx, gomock.Nil(), b.TransactionID).Return(b.BuildInfra(), nil)

		view, err := store.FindByID(ctx, b.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, b.TransactionID, view.TransactionID)
		assert.Equal(t, "42.1234", view.Amount.String())
		assert.Equal(t, "USD", view.Currency)
		assert.Equal(t, "SUCCESS", view.Status)
		require.NotNil(t, view.SourceAccount)
		assert.Equal(t, b.SourceAccount, *view.SourceAccount)
		assert.Nil(t, view.CustomerEmail)
		assert.Equal(t, b.CreatedAt, view.CreatedAt)
	})

	t.Run("missing row is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := readstoremock.NewMockTransactionReadQueries(ctrl)
		store := readstore.NewTransactionReadStore(q, nil)

		q.EXPECT().GetTransactionByID(ctx, gomock.Any(), gomock.Any()).Return(sqlc.Transactions{}, pgx.ErrNoRows)

		_, err := store.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("query failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := readstoremock.NewMockTransactionReadQueries(ctrl)
		store := readstore.NewTransactionReadStore(q, nil)

		q.EXPECT().GetTransactionByID(ctx, gomock.Any(), gomock.Any()).Return(sqlc.Transactions{}, errors.New("timeout"))

		_, err := store.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("corrupt amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := readstoremock.NewMockTransactionReadQueries(ctrl)
		store := readstore.NewTransactionReadStore(q, nil)

		row := builder.NewPaymentBuilder().BuildInfra()
		row.Amount = pgtype.Numeric{NaN: true, Valid: true}
		q.EXPECT().GetTransactionByID(ctx, gomock.Any(), gomock.Any()).Return(row, nil)

		_, err := store.FindByID(ctx, row.ID)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
