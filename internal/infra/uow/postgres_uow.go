package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"payment-gateway/internal/infra/repository"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// SQLSTATEs worth replaying the whole payment write for.
var retryableCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
}

type Option func(*PostgresUoW)

// WithRetries bounds how often Within replays fn after a retryable failure.
func WithRetries(maxRetries int, backoffBase time.Duration) Option {
	return func(u *PostgresUoW) {
		u.maxRetries = maxRetries
		u.backoffBase = backoffBase
	}
}

type PostgresUoW struct {
	pool        *pgxpool.Pool
	q           *sqlc.Queries
	maxRetries  int
	backoffBase time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return New(pool, q)
}

func New(pool *pgxpool.Pool, q *sqlc.Queries, opts ...Option) *PostgresUoW {
	u := &PostgresUoW{
		pool:        pool,
		q:           q,
		maxRetries:  3,
		backoffBase: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Within commits the transaction row and its outbox entry together or not at
// all. fn may run more than once, so it must not touch anything outside the
// database; ids and timestamps are chosen by the caller beforehand.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = u.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		if attempt >= u.maxRetries {
			slog.Error("payment write failed after max retries", "attempts", attempt+1, "error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := backoff(attempt, u.backoffBase)
		slog.Warn("retrying payment write",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// WithDB runs fn on the pool; each statement commits on its own.
func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) runOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, &txScope{dbtx: pgxTx, q: u.q})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", rbErr.Error())
	}
	return err
}

// backoff doubles per attempt with up to 20% jitter.
func backoff(attempt int, base time.Duration) time.Duration {
	wait := base << attempt
	if jitter := int64(wait / 5); jitter > 0 {
		wait += time.Duration(rand.Int64N(jitter))
	}
	return wait
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	_, ok := retryableCodes[pgErr.Code]
	return ok
}

// txScope hands out repositories bound to one pgx transaction.
type txScope struct {
	dbtx sqlc.DBTX
	q    *sqlc.Queries

	transactions shared.TransactionRepository
	outbox       shared.OutboxRepository
}

func (t *txScope) DB() sqlc.DBTX {
	return t.dbtx
}

func (t *txScope) Transactions() shared.TransactionRepository {
	if t.transactions == nil {
		t.transactions = repository.NewTransactionRepository(t.q)
	}
	return t.transactions
}

func (t *txScope) Outbox() shared.OutboxRepository {
	if t.outbox == nil {
		t.outbox = repository.NewOutboxRepository(t.q)
	}
	return t.outbox
}
