package db

import (
	"context"
	"log/slog"

	"payment-gateway/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

var errAdvisoryLock = errs.New("failed to acquire advisory lock")

// AdvisoryLock is a session-level pg_advisory_lock held on one pooled
// connection for the lifetime of the returned release func.
type AdvisoryLock struct {
	pool *pgxpool.Pool
	key  int64
}

func NewAdvisoryLock(pool *pgxpool.Pool, key int64) *AdvisoryLock {
	return &AdvisoryLock{pool: pool, key: key}
}

// TryAcquire never blocks on the lock itself. ok is false when another
// session holds it.
func (l *AdvisoryLock) TryAcquire(ctx context.Context) (release func(), ok bool, err error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, false, errs.Mark(err, errAdvisoryLock)
	}

	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", l.key).Scan(&ok); err != nil {
		conn.Release()
		return nil, false, errs.Mark(err, errAdvisoryLock)
	}
	if !ok {
		conn.Release()
		return nil, false, nil
	}

	release = func() {
		// Unlock with a fresh context: the caller's may already be cancelled.
		if _, err := conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", l.key); err != nil {
			slog.Warn("failed to release advisory lock", "key", l.key, "error", err.Error())
			// Closing the connection drops every session lock it holds.
			_ = conn.Conn().Close(context.Background())
		}
		conn.Release()
	}
	return release, true, nil
}
