package bootstrap

import (
	"context"

	"payment-gateway/internal/infra/cache"
	"payment-gateway/internal/pkg/config"
	"payment-gateway/internal/usecase/idempotency"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		fx.Annotate(
			NewRedisClient,
			fx.As(new(redis.UniversalClient)),
		),
		fx.Annotate(
			cache.NewRedisStore,
			fx.As(new(idempotency.Cache)),
		),
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, cleanup, err := cache.Connect(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return client, nil
}
