package event

import (
	"encoding/json"
	"time"

	"payment-gateway/internal/domain/payment"
	"payment-gateway/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrMalformedEvent = errs.New("malformed payment event")

// PaymentEvent is the wire snapshot published on the payment topic.
// Readers ignore fields they do not know.
type PaymentEvent struct {
	TransactionID      uuid.UUID       `json:"transactionId"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Status             string          `json:"status"`
	CustomerEmail      string          `json:"customerEmail,omitempty"`
	SourceAccount      string          `json:"sourceAccount,omitempty"`
	DestinationAccount string          `json:"destinationAccount,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

func FromTransaction(tx *payment.Transaction) PaymentEvent {
	return PaymentEvent{
		TransactionID:      tx.ID(),
		Amount:             tx.Amount().Decimal(),
		Currency:           tx.Currency().String(),
		Status:             tx.Status().String(),
		CustomerEmail:      tx.CustomerEmail(),
		SourceAccount:      tx.SourceAccount().String(),
		DestinationAccount: tx.DestinationAccount().String(),
		CreatedAt:          tx.CreatedAt(),
	}
}

// Encoder turns a transaction into an outbox payload.
type Encoder func(tx *payment.Transaction) ([]byte, error)

func EncodeTransaction(tx *payment.Transaction) ([]byte, error) {
	return json.Marshal(FromTransaction(tx))
}

// Decode rejects payloads that cannot identify a transaction or its status.
func Decode(data []byte) (PaymentEvent, error) {
	var evt PaymentEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return PaymentEvent{}, errs.Mark(err, ErrMalformedEvent)
	}
	if evt.TransactionID == uuid.Nil {
		return PaymentEvent{}, errs.Wrap(ErrMalformedEvent, "missing transactionId")
	}
	if evt.Status == "" {
		return PaymentEvent{}, errs.Wrap(ErrMalformedEvent, "missing status")
	}
	return evt, nil
}
