package errs

import "errors"

// Domain-specific sentinel errors shared by the producer and consumer paths
var (
	// Payment errors
	ErrInvalidPayment     = errors.New("invalid payment")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentExecution   = errors.New("payment execution failed")
	ErrEventSerialization = errors.New("event serialization failed")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyKeyTooLong  = errors.New("idempotency key too long")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
