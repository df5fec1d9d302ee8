package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentView struct {
	TransactionID      uuid.UUID
	Amount             decimal.Decimal
	Currency           string
	Status             string
	SourceAccount      *string
	DestinationAccount *string
	CustomerEmail      *string
	CreatedAt          time.Time
}
