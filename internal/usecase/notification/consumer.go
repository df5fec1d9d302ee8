package notification

import (
	"context"
	"log/slog"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/domain/payment"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/idempotency"
	"payment-gateway/internal/usecase/shared"
)

// ErrUnrecognizedEvent marks payloads that no amount of retrying will fix.
var ErrUnrecognizedEvent = errs.New("unrecognized payment event")

const processedMarker = "PROCESSED"

type Outcome string

const (
	OutcomeDispatched    Outcome = "DISPATCHED"
	OutcomeDuplicate     Outcome = "DUPLICATE"
	OutcomeNoAction      Outcome = "NO_ACTION"
	OutcomeUnknownStatus Outcome = "UNKNOWN_STATUS"
)

type DedupGuard interface {
	Claim(ctx context.Context, key string) (idempotency.ClaimResult, error)
	Finalize(ctx context.Context, key, value string) error
	Release(ctx context.Context, key string) error
}

// Consumer routes one payment event to the notifier at most once per
// transaction id. The id is claimed before dispatch, released when dispatch
// fails so a redelivery can try again, and finalized on success.
type Consumer struct {
	guard    DedupGuard
	notifier Notifier
	logger   *slog.Logger
}

func NewConsumer(guard DedupGuard, notifier Notifier, logger *slog.Logger) *Consumer {
	return &Consumer{
		guard:    guard,
		notifier: notifier,
		logger:   logger,
	}
}

func (c *Consumer) Process(ctx context.Context, msg shared.Message) (Outcome, error) {
	evt, err := event.Decode(msg.Value)
	if err != nil {
		return "", errs.Mark(err, ErrUnrecognizedEvent)
	}
	txID := evt.TransactionID.String()

	claim, err := c.guard.Claim(ctx, txID)
	if err != nil {
		return "", err
	}
	if !claim.Claimed {
		c.logger.Info("duplicate payment event skipped",
			"transaction_id", txID,
			"topic", msg.Topic,
			"marker", claim.Value)
		return OutcomeDuplicate, nil
	}

	outcome, err := c.dispatch(ctx, evt)
	if err != nil {
		if relErr := c.guard.Release(context.WithoutCancel(ctx), txID); relErr != nil {
			c.logger.Error("failed to release notification claim",
				"transaction_id", txID,
				"error", relErr.Error())
		}
		return "", err
	}

	if err := c.guard.Finalize(context.WithoutCancel(ctx), txID, processedMarker); err != nil {
		c.logger.Warn("failed to finalize notification claim",
			"transaction_id", txID,
			"error", err.Error())
	}
	return outcome, nil
}

func (c *Consumer) dispatch(ctx context.Context, evt event.PaymentEvent) (Outcome, error) {
	status, err := payment.ParseStatus(evt.Status)
	if err != nil {
		c.logger.Warn("unknown payment status",
			"transaction_id", evt.TransactionID.String(),
			"status", evt.Status)
		return OutcomeUnknownStatus, nil
	}

	if !status.IsTerminal() {
		c.logger.Info("payment not settled, no notification sent",
			"transaction_id", evt.TransactionID.String(),
			"status", status.String())
		return OutcomeNoAction, nil
	}

	if status == payment.StatusSuccess {
		if err := c.notifier.SendConfirmation(ctx, evt); err != nil {
			return "", errs.Wrap(err, "send payment confirmation")
		}
		return OutcomeDispatched, nil
	}
	if err := c.notifier.SendFailureAlert(ctx, evt); err != nil {
		return "", errs.Wrap(err, "send payment failure alert")
	}
	return OutcomeDispatched, nil
}
