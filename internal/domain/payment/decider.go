package payment

import "context"

// OutcomeDecider is the business black box that settles an order.
// Fraud checks and ledger postings live behind it.
type OutcomeDecider interface {
	Decide(ctx context.Context, order Order) (Status, error)
}

type ApproveAllDecider struct{}

func NewApproveAllDecider() OutcomeDecider {
	return ApproveAllDecider{}
}

func (ApproveAllDecider) Decide(_ context.Context, _ Order) (Status, error) {
	return StatusSuccess, nil
}

// DeciderFunc adapts a plain function, mostly for tests and simulations.
type DeciderFunc func(ctx context.Context, order Order) (Status, error)

func (f DeciderFunc) Decide(ctx context.Context, order Order) (Status, error) {
	return f(ctx, order)
}
