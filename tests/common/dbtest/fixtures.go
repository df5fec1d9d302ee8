//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"payment-gateway/internal/domain/outbox"
	"payment-gateway/internal/infra/repository"
	sqlc "payment-gateway/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InsertTransaction writes a transaction row directly, bypassing the outbox.
func InsertTransaction(t *testing.T, db DBLike, amount, currency, status string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO transactions (id, amount, currency, status, source_account, destination_account, created_at)
		 VALUES ($1, $2::numeric, $3, $4, 'acc-src', 'acc-dst', now())`,
		id, amount, currency, status)
	require.NoError(t, err)
	return id
}

// OutboxEntries loads every outbox row recorded for one aggregate.
func OutboxEntries(t *testing.T, db sqlc.DBTX, aggregateID uuid.UUID) []*outbox.Entry {
	t.Helper()

	entries, err := repository.NewOutboxRepository(sqlc.New()).ListByAggregate(context.Background(), db, aggregateID)
	require.NoError(t, err)
	return entries
}

func CountTransactions(t *testing.T, db DBLike) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), "SELECT count(*) FROM transactions").Scan(&n))
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
