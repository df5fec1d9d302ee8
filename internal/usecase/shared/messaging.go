package shared

import (
	"context"
	"time"
)

// Message is a channel record as seen by use cases, independent of the broker client.
type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Time      time.Time
}

func (m Message) Header(name string) string {
	if m.Headers == nil {
		return ""
	}
	return m.Headers[name]
}

// Publisher returns only after the broker acknowledged the write.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}
