package event

import (
	"fmt"
	"strconv"
	"time"
)

const PaymentEventsTopic = "payment-events"

// Headers carried by redelivered and dead-lettered messages.
const (
	HeaderEventType     = "x-event-type"
	HeaderOriginalTopic = "x-original-topic"
	HeaderAttempt       = "x-retry-attempt"
	HeaderNotBefore     = "x-retry-not-before"
	HeaderLastError     = "x-exception-message"
)

func RetryTopic(base string, index int) string {
	return fmt.Sprintf("%s-retry-%d", base, index)
}

func DeadLetterTopic(base string) string {
	return base + "-dlt"
}

// Topics lists every topic a consumer of base must subscribe to for the
// given number of total attempts, in delivery order, dead-letter last.
func Topics(base string, attempts int) []string {
	topics := []string{base}
	for i := 0; i < attempts-1; i++ {
		topics = append(topics, RetryTopic(base, i))
	}
	return append(topics, DeadLetterTopic(base))
}

// ParseAttempt reads a HeaderAttempt value. Missing or invalid values mean
// the first delivery.
func ParseAttempt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseNotBefore reads a HeaderNotBefore value. The zero time means no delay.
func ParseNotBefore(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func FormatNotBefore(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
