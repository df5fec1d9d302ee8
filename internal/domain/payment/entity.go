package payment

import (
	"time"

	"payment-gateway/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrMissingTransactionID = errs.New("transaction id is required")

// Order is the client's payment instruction before an outcome is decided.
type Order struct {
	Amount             Amount
	Currency           Currency
	SourceAccount      AccountID
	DestinationAccount AccountID
	CustomerEmail      string
}

func NewOrder(amount decimal.Decimal, currency, source, destination, customerEmail string) (Order, error) {
	a, err := NewAmount(amount)
	if err != nil {
		return Order{}, err
	}
	c, err := NewCurrency(currency)
	if err != nil {
		return Order{}, err
	}
	src, err := NewAccountID(source)
	if err != nil {
		return Order{}, err
	}
	dst, err := NewAccountID(destination)
	if err != nil {
		return Order{}, err
	}
	return Order{
		Amount:             a,
		Currency:           c,
		SourceAccount:      src,
		DestinationAccount: dst,
		CustomerEmail:      customerEmail,
	}, nil
}

// Transaction is append-only: there are no mutators after construction.
type Transaction struct {
	id             uuid.UUID
	order          Order
	status         Status
	idempotencyKey *string
	createdAt      time.Time
}

func NewTransaction(id uuid.UUID, order Order, status Status, idempotencyKey string, now time.Time) (*Transaction, error) {
	if id == uuid.Nil {
		return nil, ErrMissingTransactionID
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	if len(idempotencyKey) > MaxIdempotencyKeyLength {
		return nil, errs.ErrIdempotencyKeyTooLong
	}

	var key *string
	if idempotencyKey != "" {
		key = &idempotencyKey
	}

	return &Transaction{
		id:             id,
		order:          order,
		status:         status,
		idempotencyKey: key,
		createdAt:      now,
	}, nil
}

// Reconstruct rebuilds a stored transaction without re-running creation rules.
func Reconstruct(id uuid.UUID, order Order, status Status, idempotencyKey *string, createdAt time.Time) *Transaction {
	return &Transaction{
		id:             id,
		order:          order,
		status:         status,
		idempotencyKey: idempotencyKey,
		createdAt:      createdAt,
	}
}

func (t *Transaction) ID() uuid.UUID                 { return t.id }
func (t *Transaction) Order() Order                  { return t.order }
func (t *Transaction) Amount() Amount                { return t.order.Amount }
func (t *Transaction) Currency() Currency            { return t.order.Currency }
func (t *Transaction) SourceAccount() AccountID      { return t.order.SourceAccount }
func (t *Transaction) DestinationAccount() AccountID { return t.order.DestinationAccount }
func (t *Transaction) CustomerEmail() string         { return t.order.CustomerEmail }
func (t *Transaction) Status() Status                { return t.status }
func (t *Transaction) IdempotencyKey() *string       { return t.idempotencyKey }
func (t *Transaction) CreatedAt() time.Time          { return t.createdAt }
