package api

import (
	"net/http"

	"payment-gateway/internal/domain/payment"
	reqdto "payment-gateway/internal/handler/dto/request"
	resdto "payment-gateway/internal/handler/dto/response"
	"payment-gateway/internal/handler/httperr"
	"payment-gateway/internal/handler/middleware"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/commands"
	"payment-gateway/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const (
	ReplayedHeader = middleware.ReplayedHeader

	inProgressMessage = "Transaction in progress. Please wait."
	keyTooLongMessage = "X-Idempotency-Key header is too long"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
	q    queries.PaymentQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q}
}

// @Summary Submit payment
// @Description Process a payment exactly once per idempotency key
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Idempotency-Key header string true "Client-chosen idempotency key"
// @Param request body reqdto.PaymentRequest true "Payment request"
// @Success 200 {object} commands.PaymentResult
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} resdto.MessageResponse
// @Failure 500 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/v1/payments [post]
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	key := c.GetHeader(middleware.IdempotencyKeyHeader)
	if key == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrIdempotencyKeyRequired, "X-Idempotency-Key header is required", nil)
		return
	}
	if len(key) > payment.MaxIdempotencyKeyLength {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrIdempotencyKeyTooLong, keyTooLongMessage, nil)
		return
	}

	var req reqdto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	var params commands.ProcessPaymentParams
	if err := copier.Copy(&params, &req); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Payment Failed", nil)
		return
	}

	result, err := h.cmds.SubmitPayment(c.Request.Context(), params, key)
	if err != nil {
		h.handleSubmitError(c, err)
		return
	}

	if result.IsReplayed {
		c.Header(ReplayedHeader, "true")
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", result.Body)
}

func (h *PaymentHandler) handleSubmitError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrIdempotencyInProgress):
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusConflict, resdto.MessageResponse{Message: inProgressMessage})
	case errs.Is(err, errs.ErrIdempotencyKeyRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "X-Idempotency-Key header is required", nil)
	case errs.Is(err, errs.ErrIdempotencyKeyTooLong):
		httperr.AbortWithError(c, http.StatusBadRequest, err, keyTooLongMessage, nil)
	case errs.Is(err, errs.ErrInvalidPayment):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid payment", err.Error())
	case errs.Is(err, errs.ErrIdempotencyCheckFailed):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Payment service temporarily unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Payment Failed", nil)
	}
}

// @Summary Get payment
// @Description Look up a recorded transaction by its id
// @Tags payments
// @Produce json
// @Param transactionId path string true "Transaction ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/v1/payments/{transactionId} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("transactionId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid transaction id", nil)
		return
	}

	view, err := h.q.GetByTransactionID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, errs.ErrPaymentNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load payment", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}
