package bootstrap

import (
	"context"
	"log/slog"

	"payment-gateway/internal/infra/db"
	"payment-gateway/internal/pkg/config"
	"payment-gateway/internal/usecase/workers"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// SweepLockModule is only needed by processes that run the outbox relay.
var SweepLockModule = fx.Module("db/sweeplock",
	fx.Provide(
		fx.Annotate(
			NewSweepLock,
			fx.As(new(workers.SweepLock)),
		),
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("database pool ready",
		"host", cfg.DB.Host,
		"database", cfg.DB.DBName,
		"max_conns", pool.Config().MaxConns)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return pool, nil
}

func NewSweepLock(pool *pgxpool.Pool, cfg config.Config) *db.AdvisoryLock {
	return db.NewAdvisoryLock(pool, cfg.Relay.LockKey)
}
