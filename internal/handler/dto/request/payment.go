package request

import (
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency" binding:"required,len=3"`
	SourceAccount      string          `json:"sourceAccount" binding:"max=64"`
	DestinationAccount string          `json:"destinationAccount" binding:"max=64"`
	CustomerEmail      string          `json:"customerEmail" binding:"omitempty,email,max=320"`
}
