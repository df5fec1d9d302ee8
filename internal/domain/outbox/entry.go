package outbox

import (
	"time"

	"payment-gateway/internal/domain/payment"
	"payment-gateway/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrMissingAggregateID = errs.New("outbox entry requires an aggregate id")
	ErrEmptyPayload       = errs.New("outbox entry requires a payload")
)

type EventType string

const (
	EventPaymentSuccess EventType = "PAYMENT_SUCCESS"
	EventPaymentFailed  EventType = "PAYMENT_FAILED"
	EventPaymentPending EventType = "PAYMENT_PENDING"
)

func EventTypeFor(status payment.Status) EventType {
	return EventType("PAYMENT_" + status.String())
}

func (t EventType) String() string { return string(t) }

// Entry is one pending publication. The id is assigned by the store and orders
// entries by insertion; processed only ever moves from false to true.
type Entry struct {
	id          int64
	aggregateID uuid.UUID
	eventType   EventType
	payload     []byte
	createdAt   time.Time
	processed   bool
}

func NewEntry(aggregateID uuid.UUID, eventType EventType, payload []byte, now time.Time) (*Entry, error) {
	if aggregateID == uuid.Nil {
		return nil, ErrMissingAggregateID
	}
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}
	return &Entry{
		aggregateID: aggregateID,
		eventType:   eventType,
		payload:     payload,
		createdAt:   now,
	}, nil
}

func Reconstruct(id int64, aggregateID uuid.UUID, eventType EventType, payload []byte, createdAt time.Time, processed bool) *Entry {
	return &Entry{
		id:          id,
		aggregateID: aggregateID,
		eventType:   eventType,
		payload:     payload,
		createdAt:   createdAt,
		processed:   processed,
	}
}

func (e *Entry) ID() int64              { return e.id }
func (e *Entry) AggregateID() uuid.UUID { return e.aggregateID }
func (e *Entry) EventType() EventType   { return e.eventType }
func (e *Entry) Payload() []byte        { return e.payload }
func (e *Entry) CreatedAt() time.Time   { return e.createdAt }
func (e *Entry) Processed() bool        { return e.processed }
