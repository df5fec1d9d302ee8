package response

import (
	"payment-gateway/internal/usecase/queries"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type PaymentResponse struct {
	TransactionID      string  `json:"transactionId"`
	Amount             string  `json:"amount"`
	Currency           string  `json:"currency"`
	Status             string  `json:"status"`
	SourceAccount      *string `json:"sourceAccount,omitempty"`
	DestinationAccount *string `json:"destinationAccount,omitempty"`
	CustomerEmail      *string `json:"customerEmail,omitempty"`
	CreatedAt          int64   `json:"createdAt"`
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	return &PaymentResponse{
		TransactionID:      v.TransactionID.String(),
		Amount:             v.Amount.String(),
		Currency:           v.Currency,
		Status:             v.Status,
		SourceAccount:      v.SourceAccount,
		DestinationAccount: v.DestinationAccount,
		CustomerEmail:      v.CustomerEmail,
		CreatedAt:          v.CreatedAt.Unix(),
	}
}
