//go:build unit

package handler_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"payment-gateway/internal/handler"
	"payment-gateway/internal/handler/api"
	"payment-gateway/internal/handler/middleware"
	"payment-gateway/internal/pkg/config"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/tests/common/httptest"
	commandsmock "payment-gateway/tests/mock/commands"
	queriesmock "payment-gateway/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newEngine(t *testing.T) (*gin.Engine, *commandsmock.MockPaymentCommands) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockPaymentCommands(ctrl)
	q := queriesmock.NewMockPaymentQueries(ctrl)

	engine := gin.New()
	handler.NewRouter(engine, config.NewTestConfig(), slog.New(slog.DiscardHandler), api.NewPaymentHandler(cmds, q))
	return engine, cmds
}

func TestRouter_Health(t *testing.T) {
	engine, _ := newEngine(t)

	rec := httptest.PerformRequest(t, engine, http.MethodGet, "/health", nil, nil)

	var body map[string]string
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_RequestID(t *testing.T) {
	engine, _ := newEngine(t)

	t.Run("client id is echoed", func(t *testing.T) {
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/health", nil,
			map[string]string{middleware.RequestIDHeader: "req-42"})
		assert.Equal(t, "req-42", rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("oversized id is replaced", func(t *testing.T) {
		long := strings.Repeat("x", 200)
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/health", nil,
			map[string]string{middleware.RequestIDHeader: long})

		got := rec.Header().Get(middleware.RequestIDHeader)
		assert.NotEmpty(t, got)
		assert.NotEqual(t, long, got)
	})

	t.Run("error bodies carry the request id", func(t *testing.T) {
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/api/v1/payments/not-a-uuid", nil,
			map[string]string{middleware.RequestIDHeader: "req-43"})

		var body struct {
			RequestID string `json:"requestId"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "req-43", body.RequestID)
	})
}

func TestRouter_NoRoute(t *testing.T) {
	engine, _ := newEngine(t)

	rec := httptest.PerformRequest(t, engine, http.MethodGet, "/api/v1/unknown", nil, nil)
	httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "Route not found")
}

func TestRouter_PaymentRoutes(t *testing.T) {
	engine, cmds := newEngine(t)

	cmds.EXPECT().SubmitPayment(gomock.Any(), gomock.Any(), "key-1").
		Return(nil, errs.ErrIdempotencyInProgress).Times(1)

	body := map[string]any{"amount": "10.00", "currency": "EUR"}
	rec := httptest.PerformRequest(t, engine, http.MethodPost, "/api/v1/payments", body, httptest.IdempotencyHeaders("key-1"))
	httptest.AssertMessageResponse(t, rec, http.StatusConflict, "Transaction in progress. Please wait.")

	rec = httptest.PerformRequest(t, engine, http.MethodGet, "/api/v1/payments/not-a-uuid", nil, nil)
	httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid transaction id")
}
