package notification

import (
	"context"
	"log/slog"

	"payment-gateway/internal/domain/event"
)

// Notifier delivers the customer-facing side effect of a payment event.
type Notifier interface {
	SendConfirmation(ctx context.Context, evt event.PaymentEvent) error
	SendFailureAlert(ctx context.Context, evt event.PaymentEvent) error
}

// LogNotifier writes notifications to the structured log instead of a mail
// or SMS gateway.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendConfirmation(_ context.Context, evt event.PaymentEvent) error {
	n.logger.Info("sending payment confirmation",
		"transaction_id", evt.TransactionID.String(),
		"amount", evt.Amount.String(),
		"currency", evt.Currency,
		"recipient", evt.CustomerEmail)
	return nil
}

func (n *LogNotifier) SendFailureAlert(_ context.Context, evt event.PaymentEvent) error {
	n.logger.Warn("sending payment failure alert",
		"transaction_id", evt.TransactionID.String(),
		"amount", evt.Amount.String(),
		"currency", evt.Currency,
		"recipient", evt.CustomerEmail)
	return nil
}
