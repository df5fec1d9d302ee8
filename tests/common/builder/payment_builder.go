//go:build unit || e2e

package builder

import (
	"time"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/domain/payment"
	reqdto "payment-gateway/internal/handler/dto/request"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
	"payment-gateway/internal/pkg/pgconv"
	"payment-gateway/internal/usecase/commands"
	"payment-gateway/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentBuilder struct {
	TransactionID      uuid.UUID
	Amount             decimal.Decimal
	Currency           string
	SourceAccount      string
	DestinationAccount string
	CustomerEmail      string
	Status             payment.Status
	IdempotencyKey     string
	CreatedAt          time.Time
}

func NewPaymentBuilder() *PaymentBuilder {
	return &PaymentBuilder{
		TransactionID:      uuid.New(),
		Amount:             decimal.RequireFromString("100.50"),
		Currency:           "USD",
		SourceAccount:      "acc-src-001",
		DestinationAccount: "acc-dst-001",
		CustomerEmail:      "customer@example.com",
		Status:             payment.StatusSuccess,
		IdempotencyKey:     "key-" + uuid.NewString(),
		CreatedAt:          time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func (b *PaymentBuilder) With(mutate func(*PaymentBuilder)) *PaymentBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *PaymentBuilder) BuildOrder() (payment.Order, error) {
	return payment.NewOrder(b.Amount, b.Currency, b.SourceAccount, b.DestinationAccount, b.CustomerEmail)
}

func (b *PaymentBuilder) BuildDomain() (*payment.Transaction, error) {
	order, err := b.BuildOrder()
	if err != nil {
		return nil, err
	}
	return payment.NewTransaction(b.TransactionID, order, b.Status, b.IdempotencyKey, b.CreatedAt)
}

// MustBuildDomain is for fixtures whose inputs are known to be valid.
func (b *PaymentBuilder) MustBuildDomain() *payment.Transaction {
	tx, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return tx
}

func (b *PaymentBuilder) BuildEventPayload() []byte {
	data, err := event.EncodeTransaction(b.MustBuildDomain())
	if err != nil {
		panic(err)
	}
	return data
}

func (b *PaymentBuilder) BuildInfra() sqlc.Transactions {
	return sqlc.Transactions{
		ID:                 b.TransactionID,
		Amount:             pgconv.DecimalToNumeric(b.Amount),
		Currency:           b.Currency,
		Status:             string(b.Status),
		SourceAccount:      pgconv.OptionalStringToPgtype(b.SourceAccount),
		DestinationAccount: pgconv.OptionalStringToPgtype(b.DestinationAccount),
		CustomerEmail:      pgconv.OptionalStringToPgtype(b.CustomerEmail),
		IdempotencyKey:     pgconv.OptionalStringToPgtype(b.IdempotencyKey),
		CreatedAt:          pgconv.TimeToPgtype(b.CreatedAt),
	}
}

func (b *PaymentBuilder) BuildRequestDTO() reqdto.PaymentRequest {
	return reqdto.PaymentRequest{
		Amount:             b.Amount,
		Currency:           b.Currency,
		SourceAccount:      b.SourceAccount,
		DestinationAccount: b.DestinationAccount,
		CustomerEmail:      b.CustomerEmail,
	}
}

func (b *PaymentBuilder) BuildParams() commands.ProcessPaymentParams {
	return commands.ProcessPaymentParams{
		Amount:             b.Amount,
		Currency:           b.Currency,
		SourceAccount:      b.SourceAccount,
		DestinationAccount: b.DestinationAccount,
		CustomerEmail:      b.CustomerEmail,
	}
}

func (b *PaymentBuilder) BuildViewQuery() *queries.PaymentView {
	src, dst, email := b.SourceAccount, b.DestinationAccount, b.CustomerEmail
	return &queries.PaymentView{
		TransactionID:      b.TransactionID,
		Amount:             b.Amount,
		Currency:           b.Currency,
		Status:             string(b.Status),
		SourceAccount:      &src,
		DestinationAccount: &dst,
		CustomerEmail:      &email,
		CreatedAt:          b.CreatedAt,
	}
}

// Fluent builder methods
func (b *PaymentBuilder) WithAmount(amount string) *PaymentBuilder {
	b.Amount = decimal.RequireFromString(amount)
	return b
}

func (b *PaymentBuilder) WithCurrency(currency string) *PaymentBuilder {
	b.Currency = currency
	return b
}

func (b *PaymentBuilder) WithStatus(status payment.Status) *PaymentBuilder {
	b.Status = status
	return b
}

func (b *PaymentBuilder) WithTransactionID(id uuid.UUID) *PaymentBuilder {
	b.TransactionID = id
	return b
}

func (b *PaymentBuilder) WithIdempotencyKey(key string) *PaymentBuilder {
	b.IdempotencyKey = key
	return b
}

func (b *PaymentBuilder) WithCustomerEmail(email string) *PaymentBuilder {
	b.CustomerEmail = email
	return b
}

func (b *PaymentBuilder) AsDeclined() *PaymentBuilder {
	b.Status = payment.StatusFailed
	return b
}

func (b *PaymentBuilder) AsPending() *PaymentBuilder {
	b.Status = payment.StatusPending
	return b
}
