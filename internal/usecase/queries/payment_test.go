//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"payment-gateway/internal/infra"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/queries"
	"payment-gateway/tests/common/builder"
	queriesmock "payment-gateway/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPaymentQueries_GetByTransactionID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	testCases := []struct {
		name      string
		setupMock func(m *queriesmock.MockPaymentReadStore)
		errIs     error
	}{
		{
			name: "found",
			setupMock: func(m *queriesmock.MockPaymentReadStore) {
				m.EXPECT().FindByID(ctx, id).Return(builder.NewPaymentBuilder().WithTransactionID(id).BuildViewQuery(), nil)
			},
		},
		{
			name: "not found",
			setupMock: func(m *queriesmock.MockPaymentReadStore) {
				m.EXPECT().FindByID(ctx, id).Return(nil, infra.WrapRepoErr("transaction not found", nil, infra.KindNotFound))
			},
			errIs: errs.ErrPaymentNotFound,
		},
		{
			name: "store failure",
			setupMock: func(m *queriesmock.MockPaymentReadStore) {
				m.EXPECT().FindByID(ctx, id).Return(nil, infra.WrapRepoErr("failed", errors.New("timeout")))
			},
			errIs: errs.ErrDatabaseOperationFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockPaymentReadStore(ctrl)
			tc.setupMock(store)

			view, err := queries.NewPaymentQueries(store).GetByTransactionID(ctx, id)
			if tc.errIs != nil {
				require.Error(t, err)
				assert.Nil(t, view)
				assert.True(t, errs.Is(err, tc.errIs))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, view.TransactionID)
		})
	}
}
