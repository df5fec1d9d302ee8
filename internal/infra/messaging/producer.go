package messaging

import (
	"context"
	"fmt"
	"sort"
	"time"

	"payment-gateway/internal/pkg/config"
	"payment-gateway/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           cfg.WriteTimeout,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Transport:              &kafka.Transport{ClientID: cfg.ClientID},
	}
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish blocks until every in-sync replica acknowledged the record.
func (p *KafkaPublisher) Publish(ctx context.Context, msg shared.Message) error {
	if err := p.writer.WriteMessages(ctx, toKafkaMessage(msg)); err != nil {
		return fmt.Errorf("kafka write to %s: %w", msg.Topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toKafkaMessage(msg shared.Message) kafka.Message {
	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]kafka.Header, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(msg.Headers[k])})
	}

	return kafka.Message{
		Topic:   msg.Topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	}
}

func fromKafkaMessage(m kafka.Message) shared.Message {
	headers := make(map[string]string, len(m.Headers))
	for _, h := range m.Headers {
		headers[h.Key] = string(h.Value)
	}
	return shared.Message{
		Topic:     m.Topic,
		Key:       m.Key,
		Value:     m.Value,
		Headers:   headers,
		Partition: m.Partition,
		Offset:    m.Offset,
		Time:      m.Time,
	}
}
