package components

import (
	"payment-gateway/internal/infra/readstore"
	"payment-gateway/internal/infra/repository"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
	"payment-gateway/internal/infra/uow"
	"payment-gateway/internal/pkg/clock"
	"payment-gateway/internal/usecase/queries"
	"payment-gateway/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
	clock.NewRealClock,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Transaction
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.TransactionReadQueries)),
		),
		fx.Annotate(
			readstore.NewTransactionReadStore,
			fx.As(new(queries.PaymentReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Transaction
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.TransactionWriteQueries)),
		),
		fx.Annotate(
			repository.NewTransactionRepository,
			fx.As(new(shared.TransactionRepository)),
		),
		// Outbox
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.OutboxQueries)),
		),
		fx.Annotate(
			repository.NewOutboxRepository,
			fx.As(new(shared.OutboxRepository)),
		),
		// DeadLetter
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.DeadLetterQueries)),
		),
		fx.Annotate(
			repository.NewDeadLetterRepository,
			fx.As(new(shared.DeadLetterRepository)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
