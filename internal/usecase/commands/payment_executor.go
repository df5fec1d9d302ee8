package commands

import (
	"context"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/domain/outbox"
	"payment-gateway/internal/domain/payment"
	"payment-gateway/internal/pkg/clock"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProcessPaymentParams struct {
	Amount             decimal.Decimal
	Currency           string
	SourceAccount      string
	DestinationAccount string
	CustomerEmail      string
}

// PaymentResult is also the cached replay body, so its JSON shape is the API contract.
type PaymentResult struct {
	TransactionID uuid.UUID `json:"transactionId"`
	Status        string    `json:"status"`
	Message       string    `json:"message"`
}

type PaymentExecutor interface {
	Process(ctx context.Context, params ProcessPaymentParams, idempotencyKey string) (*PaymentResult, error)
}

type paymentExecutorImpl struct {
	uow     shared.UnitOfWork
	decider payment.OutcomeDecider
	encode  event.Encoder
	clock   clock.Clock
}

func NewPaymentExecutor(
	uow shared.UnitOfWork,
	decider payment.OutcomeDecider,
	encode event.Encoder,
	clock clock.Clock,
) PaymentExecutor {
	if encode == nil {
		encode = event.EncodeTransaction
	}
	return &paymentExecutorImpl{
		uow:     uow,
		decider: decider,
		encode:  encode,
		clock:   clock,
	}
}

// Process writes the transaction row and its outbox entry in one commit.
// Nothing is published from here.
func (e *paymentExecutorImpl) Process(ctx context.Context, params ProcessPaymentParams, idempotencyKey string) (*PaymentResult, error) {
	order, err := payment.NewOrder(
		params.Amount,
		params.Currency,
		params.SourceAccount,
		params.DestinationAccount,
		params.CustomerEmail,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidPayment)
	}

	status, err := e.decider.Decide(ctx, order)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decide payment outcome"), errs.ErrPaymentExecution)
	}

	// Generated outside the unit of work so a retried commit reuses the same id.
	now := e.clock.Now()
	txn, err := payment.NewTransaction(uuid.New(), order, status, idempotencyKey, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPaymentExecution)
	}

	err = e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Transactions().Create(ctx, tx.DB(), txn); err != nil {
			return err
		}

		payload, err := e.encode(txn)
		if err != nil {
			return errs.Mark(errs.Wrap(err, "encode payment event"), errs.ErrEventSerialization)
		}

		entry, err := outbox.NewEntry(txn.ID(), outbox.EventTypeFor(status), payload, now)
		if err != nil {
			return errs.Mark(err, errs.ErrEventSerialization)
		}

		_, err = tx.Outbox().Append(ctx, tx.DB(), entry)
		return err
	})
	if err != nil {
		if errs.Is(err, errs.ErrEventSerialization) {
			return nil, err
		}
		return nil, errs.Mark(err, errs.ErrPaymentExecution)
	}

	return &PaymentResult{
		TransactionID: txn.ID(),
		Status:        status.String(),
		Message:       resultMessage(status),
	}, nil
}

func resultMessage(status payment.Status) string {
	switch status {
	case payment.StatusSuccess:
		return "Payment processed successfully"
	case payment.StatusFailed:
		return "Payment was declined"
	default:
		return "Payment is pending"
	}
}
