package bootstrap

import (
	"payment-gateway/cmd/bootstrap/components"
	"payment-gateway/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)

var infraOptions = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	CacheModule,
	MessagingModule,
	components.PersistenceModule,
)

// Module wires the transaction service: HTTP ingress plus the outbox relay.
var Module = fx.Options(
	infraOptions,
	components.UseCaseModule,
	components.HandlerModule,
	SweepLockModule,
	RelayModule,
)

// NotifierModule wires the notification service.
var NotifierModule = fx.Options(
	infraOptions,
	components.NotificationModule,
	ConsumerModule,
)
