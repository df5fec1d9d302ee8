package messaging

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"payment-gateway/internal/pkg/config"

	"github.com/segmentio/kafka-go"
)

// EnsureTopics creates any missing topic through the cluster controller.
func EnsureTopics(ctx context.Context, cfg config.KafkaConfig, topics ...string) error {
	if len(cfg.Brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}

	conn, err := kafka.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		return fmt.Errorf("dial kafka broker: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("lookup kafka controller: %w", err)
	}

	ctrlConn, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("dial kafka controller: %w", err)
	}
	defer ctrlConn.Close()

	configs := make([]kafka.TopicConfig, 0, len(topics))
	for _, t := range topics {
		configs = append(configs, kafka.TopicConfig{
			Topic:             t,
			NumPartitions:     cfg.TopicPartitions,
			ReplicationFactor: cfg.ReplicationFactor,
		})
	}

	if err := ctrlConn.CreateTopics(configs...); err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create kafka topics: %w", err)
	}
	return nil
}
