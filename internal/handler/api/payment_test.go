//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"payment-gateway/internal/domain/payment"
	"payment-gateway/internal/handler/api"
	resdto "payment-gateway/internal/handler/dto/response"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/commands"
	"payment-gateway/tests/common/builder"
	"payment-gateway/tests/common/httptest"
	"payment-gateway/tests/common/testutil"
	commandsmock "payment-gateway/tests/mock/commands"
	queriesmock "payment-gateway/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockPaymentQueries
	handler      *api.PaymentHandler
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockPaymentQueries(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/payments", s.handler.ProcessPayment)
	s.router.GET("/payments/:transactionId", s.handler.GetPayment)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

type testCasePayment struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestProcessPayment
// ================================================================================

func (s *PaymentHandlerTestSuite) TestProcessPayment() {
	url := "/payments"
	b := builder.NewPaymentBuilder()
	reqBody := b.BuildRequestDTO()
	resultBody := `{"transactionId":"` + b.TransactionID.String() + `","status":"SUCCESS","message":"Payment processed successfully"}`
	headers := httptest.IdempotencyHeaders("key-123")

	bound := []testCasePayment{
		{name: "lowercase currency is accepted", mutate: testutil.Field("currency", "usd"), expectCode: http.StatusOK},
		{name: "account at 64 chars", mutate: testutil.Field("sourceAccount", strings.Repeat("a", 64)), expectCode: http.StatusOK},
		{name: "account at 65 chars", mutate: testutil.Field("sourceAccount", strings.Repeat("a", 65)), expectCode: http.StatusBadRequest},
		{name: "currency with 2 letters", mutate: testutil.Field("currency", "US"), expectCode: http.StatusBadRequest},
		{name: "currency with 4 letters", mutate: testutil.Field("currency", "USDT"), expectCode: http.StatusBadRequest},
		{name: "malformed email", mutate: testutil.Field("customerEmail", "not-an-email"), expectCode: http.StatusBadRequest},
	}

	missing := []testCasePayment{
		{name: "missing field: currency (required)", mutate: testutil.Field("currency", nil), expectCode: http.StatusBadRequest},
		{name: "missing fields: both accounts (optional)", mutate: testutil.Without("sourceAccount", "destinationAccount"), expectCode: http.StatusOK},
		{name: "missing field: customerEmail (optional)", mutate: testutil.Field("customerEmail", nil), expectCode: http.StatusOK},
	}

	allValidationTestCases := [][]testCasePayment{bound, missing}

	s.Run("success: returns 200 with the payment result", func() {
		s.mockCommands.EXPECT().SubmitPayment(gomock.Any(), gomock.Any(), "key-123").
			DoAndReturn(func(_ context.Context, p commands.ProcessPaymentParams, _ string) (*commands.SubmitPaymentResult, error) {
				s.True(b.Amount.Equal(p.Amount))
				s.Equal(b.Currency, p.Currency)
				s.Equal(b.SourceAccount, p.SourceAccount)
				s.Equal(b.DestinationAccount, p.DestinationAccount)
				s.Equal(b.CustomerEmail, p.CustomerEmail)
				return &commands.SubmitPaymentResult{Body: []byte(resultBody)}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, headers)

		var body commands.PaymentResult
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.TransactionID, body.TransactionID)
		s.Equal("SUCCESS", body.Status)
		httptest.AssertReplayed(s.T(), rec, false)
	})

	s.Run("success: replay returns cached bytes and marks the response", func() {
		s.mockCommands.EXPECT().SubmitPayment(gomock.Any(), gomock.Any(), "key-123").
			Return(&commands.SubmitPaymentResult{Body: []byte(resultBody), IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, headers)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal(resultBody, rec.Body.String())
		httptest.AssertReplayed(s.T(), rec, true)
	})

	s.Run("error: 400 when the idempotency key header is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "X-Idempotency-Key header is required")
	})

	s.Run("error: 400 when the idempotency key exceeds the stored length", func() {
		long := httptest.IdempotencyHeaders(strings.Repeat("k", payment.MaxIdempotencyKeyLength+1))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, long)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "X-Idempotency-Key header is too long")
	})

	s.Run("success: key at the stored length is accepted", func() {
		key := strings.Repeat("k", payment.MaxIdempotencyKeyLength)
		s.mockCommands.EXPECT().SubmitPayment(gomock.Any(), gomock.Any(), key).
			Return(&commands.SubmitPaymentResult{Body: []byte(resultBody)}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, httptest.IdempotencyHeaders(key))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 on malformed JSON", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, []byte(`{"amount":`), headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusOK {
						s.mockCommands.EXPECT().SubmitPayment(gomock.Any(), gomock.Any(), "key-123").
							Return(&commands.SubmitPaymentResult{Body: []byte(resultBody)}, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, headers)
					if tc.expectCode == http.StatusOK {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
					}
				})
			}
		}
	})

	s.Run("error: 409 while the same key is in flight", func() {
		s.mockCommands.EXPECT().SubmitPayment(gomock.Any(), gomock.Any(), "key-123").
			Return(nil, errs.ErrIdempotencyInProgress).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, headers)
		httptest.AssertMessageResponse(s.T(), rec, http.StatusConflict, "Transaction in progress. Please wait.")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "domain validation error",
				commandsError:  errs.Mark(errors.New("amount must be greater than zero"), errs.ErrInvalidPayment),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid payment",
			},
			{
				name:           "amount beyond storable range",
				commandsError:  errs.Mark(payment.ErrInvalidAmount, errs.ErrInvalidPayment),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid payment",
			},
			{
				name:           "key rejected when building the transaction",
				commandsError:  errs.Mark(errs.ErrIdempotencyKeyTooLong, errs.ErrPaymentExecution),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "X-Idempotency-Key header is too long",
			},
			{
				name:           "cache unavailable",
				commandsError:  errs.Mark(errors.New("dial tcp"), errs.ErrIdempotencyCheckFailed),
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "temporarily unavailable",
			},
			{
				name:           "execution failure",
				commandsError:  errs.Mark(errors.New("db down"), errs.ErrPaymentExecution),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Payment Failed",
			},
			{
				name:           "serialization failure",
				commandsError:  errs.ErrEventSerialization,
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Payment Failed",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().SubmitPayment(gomock.Any(), gomock.Any(), "key-123").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, headers)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetPayment
// ================================================================================

func (s *PaymentHandlerTestSuite) TestGetPayment() {
	b := builder.NewPaymentBuilder()
	url := "/payments/" + b.TransactionID.String()

	s.Run("success: returns 200 OK with PaymentResponse", func() {
		s.mockQueries.EXPECT().GetByTransactionID(gomock.Any(), b.TransactionID).
			Return(b.BuildViewQuery(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, nil)

		var response resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(b.TransactionID.String(), response.TransactionID)
		s.Equal("100.5", response.Amount)
		s.Equal("USD", response.Currency)
		s.Equal(b.CreatedAt.Unix(), response.CreatedAt)
		s.Require().NotNil(response.CustomerEmail)
		s.Equal(b.CustomerEmail, *response.CustomerEmail)
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/not-a-uuid", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid transaction id")
	})

	s.Run("error: 404 when the transaction is unknown", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByTransactionID(gomock.Any(), id).
			Return(nil, errs.Mark(errors.New("no rows"), errs.ErrPaymentNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/"+id.String(), nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Payment not found")
	})

	s.Run("error: 500 when the store fails", func() {
		s.mockQueries.EXPECT().GetByTransactionID(gomock.Any(), b.TransactionID).
			Return(nil, errs.Mark(errors.New("timeout"), errs.ErrDatabaseOperationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to load payment")
	})
}
