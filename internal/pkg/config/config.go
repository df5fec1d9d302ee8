package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, brokers), security settings
// - default: Values common across all environments (TTLs, intervals, retry ladder), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Idempotency IdempotencyConfig
	Relay       RelayConfig
	Retry       RetryConfig
	CORS        CORSConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Addr        string        `envconfig:"REDIS_ADDR" required:"true"`
	Password    string        `envconfig:"REDIS_PASSWORD" default:""`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	DialTimeout time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
}

type KafkaConfig struct {
	Brokers         []string      `envconfig:"KAFKA_BROKERS" required:"true"`
	ClientID        string        `envconfig:"KAFKA_CLIENT_ID" default:"payment-gateway"`
	WriteTimeout    time.Duration `envconfig:"KAFKA_WRITE_TIMEOUT" default:"10s"`
	ConsumerGroup   string        `envconfig:"KAFKA_CONSUMER_GROUP" default:"notification-group"`
	ConsumerWorkers int           `envconfig:"KAFKA_CONSUMER_WORKERS" default:"1"`

	// Topic settings used when the notifier creates missing topics at startup
	TopicPartitions   int `envconfig:"KAFKA_TOPIC_PARTITIONS" default:"3"`
	ReplicationFactor int `envconfig:"KAFKA_REPLICATION_FACTOR" default:"1"`
}

type IdempotencyConfig struct {
	ProducerTTL time.Duration `envconfig:"IDEMPOTENCY_PRODUCER_TTL" default:"30m"`
	ConsumerTTL time.Duration `envconfig:"IDEMPOTENCY_CONSUMER_TTL" default:"24h"`
}

type RelayConfig struct {
	Interval  time.Duration `envconfig:"RELAY_INTERVAL" default:"5s"`
	BatchSize int           `envconfig:"RELAY_BATCH_SIZE" default:"100"`
	LockKey   int64         `envconfig:"RELAY_LOCK_KEY" default:"7305021"`
}

type RetryConfig struct {
	Attempts     int           `envconfig:"RETRY_ATTEMPTS" default:"3"`
	InitialDelay time.Duration `envconfig:"RETRY_INITIAL_DELAY" default:"2s"`
	Multiplier   float64       `envconfig:"RETRY_MULTIPLIER" default:"2.0"`
	MaxDelay     time.Duration `envconfig:"RETRY_MAX_DELAY" default:"30s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Retry.Attempts < 1 {
		return Config{}, fmt.Errorf("RETRY_ATTEMPTS must be at least 1, got %d", cfg.Retry.Attempts)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Redis: RedisConfig{
			Addr:        "localhost:16379",
			DialTimeout: time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:           []string{"localhost:19092"},
			ClientID:          "payment-gateway-test",
			WriteTimeout:      time.Second,
			ConsumerGroup:     "notification-group-test",
			ConsumerWorkers:   1,
			TopicPartitions:   1,
			ReplicationFactor: 1,
		},
		Idempotency: IdempotencyConfig{
			ProducerTTL: 30 * time.Minute,
			ConsumerTTL: 24 * time.Hour,
		},
		Relay: RelayConfig{
			Interval:  100 * time.Millisecond,
			BatchSize: 100,
			LockKey:   7305021,
		},
		Retry: RetryConfig{
			Attempts:     3,
			InitialDelay: 2 * time.Second,
			Multiplier:   2.0,
			MaxDelay:     30 * time.Second,
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
	}
}
