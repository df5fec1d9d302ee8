package payment

import (
	"strings"

	"payment-gateway/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errs.New("amount must be greater than zero")
	ErrInvalidCurrency = errs.New("currency must be a 3-letter code")
	ErrInvalidStatus   = errs.New("invalid payment status")
	ErrInvalidAccount  = errs.New("account identifier too long")
)

// amountLimit is the first value NUMERIC(19,4) cannot hold.
var amountLimit = decimal.New(1, 19-MaxAmountScale)

const (
	MaxAmountScale          = 4
	MaxAccountLength        = 64
	MaxIdempotencyKeyLength = 255
)

type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
	StatusPending Status = "PENDING"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusSuccess, StatusFailed, StatusPending:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

// IsTerminal reports whether a notification is owed for this status.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

type Amount struct {
	value decimal.Decimal
}

func NewAmount(v decimal.Decimal) (Amount, error) {
	if !v.IsPositive() || v.GreaterThanOrEqual(amountLimit) {
		return Amount{}, ErrInvalidAmount
	}
	if v.Exponent() < -MaxAmountScale && !v.Equal(v.Truncate(MaxAmountScale)) {
		return Amount{}, ErrInvalidAmount
	}
	return Amount{value: v}, nil
}

func (a Amount) Decimal() decimal.Decimal { return a.value }
func (a Amount) String() string           { return a.value.String() }

type Currency struct {
	code string
}

func NewCurrency(code string) (Currency, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return Currency{}, ErrInvalidCurrency
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return Currency{}, ErrInvalidCurrency
		}
	}
	return Currency{code: c}, nil
}

func (c Currency) String() string { return c.code }

type AccountID string

func NewAccountID(s string) (AccountID, error) {
	v := strings.TrimSpace(s)
	if len(v) > MaxAccountLength {
		return "", ErrInvalidAccount
	}
	return AccountID(v), nil
}

func (a AccountID) String() string { return string(a) }
