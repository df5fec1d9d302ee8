//go:build unit

package workers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"payment-gateway/internal/domain/event"
	"payment-gateway/internal/domain/outbox"
	"payment-gateway/internal/infra"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
	"payment-gateway/internal/pkg/clock"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/shared"
	"payment-gateway/internal/usecase/workers"
	workersmock "payment-gateway/tests/mock/workers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// memoryOutbox is an in-memory outbox table.
type memoryOutbox struct {
	mu       sync.Mutex
	rows     []*outbox.Entry
	done     map[int64]bool
	listErr  error
	markErr  error
	markSeen []int64
}

func newMemoryOutbox() *memoryOutbox {
	return &memoryOutbox{done: make(map[int64]bool)}
}

func (m *memoryOutbox) add(aggID uuid.UUID, payload string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := int64(len(m.rows) + 1)
	m.rows = append(m.rows, outbox.Reconstruct(id, aggID, outbox.EventPaymentSuccess, []byte(payload), time.Time{}, false))
	return id
}

func (m *memoryOutbox) Append(context.Context, sqlc.DBTX, *outbox.Entry) (int64, error) {
	return 0, errors.New("not used")
}

func (m *memoryOutbox) ListUnprocessed(_ context.Context, _ sqlc.DBTX, limit int) ([]*outbox.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*outbox.Entry
	for _, e := range m.rows {
		if m.done[e.ID()] {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memoryOutbox) MarkProcessed(_ context.Context, _ sqlc.DBTX, id int64, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markSeen = append(m.markSeen, id)
	if m.markErr != nil {
		return m.markErr
	}
	if m.done[id] {
		return infra.WrapRepoErr("outbox event not found or already processed", nil, infra.KindNotFound)
	}
	m.done[id] = true
	return nil
}

func (m *memoryOutbox) pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows) - len(m.done)
}

type directUoW struct{}

func (directUoW) Within(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
	return errors.New("not used")
}

func (directUoW) WithDB(ctx context.Context, fn func(context.Context, sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

// recordingPublisher acks everything except keys listed in failKeys.
type recordingPublisher struct {
	mu       sync.Mutex
	sent     []shared.Message
	failKeys map[string]bool
	// entered is closed on the first Publish; gate then holds it until closed.
	entered  chan struct{}
	gate     chan struct{}
	once     sync.Once
}

func (p *recordingPublisher) Publish(ctx context.Context, msg shared.Message) error {
	if p.gate != nil {
		p.once.Do(func() { close(p.entered) })
		<-p.gate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failKeys[string(msg.Key)] {
		return errors.New("broker unavailable")
	}
	p.sent = append(p.sent, msg)
	return nil
}

func (p *recordingPublisher) values() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.sent))
	for _, m := range p.sent {
		out = append(out, string(m.Value))
	}
	return out
}

type OutboxRelayTestSuite struct {
	suite.Suite
	store     *memoryOutbox
	publisher *recordingPublisher
	relay     *workers.OutboxRelay
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *OutboxRelayTestSuite) SetupTest() {
	s.store = newMemoryOutbox()
	s.publisher = &recordingPublisher{failKeys: map[string]bool{}}
	s.relay = workers.NewOutboxRelay(directUoW{}, s.store, s.publisher, nil,
		clock.NewMockClock(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)),
		discardLogger(), workers.RelayOptions{BatchSize: 100})
}

func (s *OutboxRelayTestSuite) TestSweep_PublishesInInsertionOrder() {
	a, b := uuid.New(), uuid.New()
	s.store.add(a, "a1")
	s.store.add(b, "b1")
	s.store.add(a, "a2")

	report, err := s.relay.Sweep(context.Background())
	s.Require().NoError(err)

	s.Equal(workers.SweepReport{Published: 3}, report)
	s.Equal([]string{"a1", "b1", "a2"}, s.publisher.values())
	s.Zero(s.store.pending())

	first := s.publisher.sent[0]
	s.Equal(event.PaymentEventsTopic, first.Topic)
	s.Equal(a.String(), string(first.Key))
	s.Equal("PAYMENT_SUCCESS", first.Header(event.HeaderEventType))

	report, err = s.relay.Sweep(context.Background())
	s.Require().NoError(err)
	s.Equal(workers.SweepReport{}, report)
	s.Len(s.publisher.sent, 3)
}

func (s *OutboxRelayTestSuite) TestSweep_FailedAggregateIsDeferredAndRetried() {
	a, b := uuid.New(), uuid.New()
	s.store.add(a, "a1")
	s.store.add(b, "b1")
	s.store.add(a, "a2")
	s.publisher.failKeys[a.String()] = true

	report, err := s.relay.Sweep(context.Background())
	s.Require().NoError(err)
	s.Equal(workers.SweepReport{Published: 1, Failed: 1, Deferred: 1}, report)
	s.Equal([]string{"b1"}, s.publisher.values())
	s.Equal(2, s.store.pending())

	delete(s.publisher.failKeys, a.String())
	report, err = s.relay.Sweep(context.Background())
	s.Require().NoError(err)
	s.Equal(workers.SweepReport{Published: 2}, report)
	s.Equal([]string{"b1", "a1", "a2"}, s.publisher.values())
}

func (s *OutboxRelayTestSuite) TestSweep_UnmarkedEntryIsRepublished() {
	s.store.add(uuid.New(), "x")
	s.store.markErr = errors.New("connection lost")

	report, err := s.relay.Sweep(context.Background())
	s.Require().NoError(err)
	s.Equal(1, report.Published)
	s.Equal(1, s.store.pending())

	s.store.markErr = nil
	_, err = s.relay.Sweep(context.Background())
	s.Require().NoError(err)

	s.Equal([]string{"x", "x"}, s.publisher.values())
	s.Zero(s.store.pending())
}

func (s *OutboxRelayTestSuite) TestSweep_BatchSizeBoundsOneSweep() {
	relay := workers.NewOutboxRelay(directUoW{}, s.store, s.publisher, nil,
		clock.NewRealClock(), discardLogger(), workers.RelayOptions{BatchSize: 2})
	for i := 0; i < 5; i++ {
		s.store.add(uuid.New(), "e")
	}

	report, err := relay.Sweep(context.Background())
	s.Require().NoError(err)
	s.Equal(2, report.Published)
	s.Equal(3, s.store.pending())
}

func (s *OutboxRelayTestSuite) TestSweep_ListFailure() {
	s.store.listErr = errors.New("db down")

	_, err := s.relay.Sweep(context.Background())
	s.Require().Error(err)
	s.True(errs.Is(err, workers.ErrRelayListFailed))
}

func (s *OutboxRelayTestSuite) TestSweep_OverlappingTickIsSkipped() {
	s.store.add(uuid.New(), "slow")
	s.publisher.entered = make(chan struct{})
	s.publisher.gate = make(chan struct{})

	done := make(chan workers.SweepReport, 1)
	go func() {
		report, _ := s.relay.Sweep(context.Background())
		done <- report
	}()
	<-s.publisher.entered

	report, err := s.relay.Sweep(context.Background())
	s.Require().NoError(err)
	s.True(report.Skipped)

	close(s.publisher.gate)
	first := <-done
	s.Equal(1, first.Published)
	s.Equal([]string{"slow"}, s.publisher.values())
}

func TestOutboxRelayTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxRelayTestSuite))
}

func TestSweep_SweepLock(t *testing.T) {
	ctx := context.Background()

	t.Run("another replica holds the lock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lock := workersmock.NewMockSweepLock(ctrl)
		store := newMemoryOutbox()
		store.add(uuid.New(), "x")
		pub := &recordingPublisher{}
		relay := workers.NewOutboxRelay(directUoW{}, store, pub, lock, clock.NewRealClock(), discardLogger(), workers.RelayOptions{})

		lock.EXPECT().TryAcquire(gomock.Any()).Return(nil, false, nil)

		report, err := relay.Sweep(ctx)
		require.NoError(t, err)
		assert.True(t, report.Skipped)
		assert.Empty(t, pub.values())
	})

	t.Run("lock is released after the sweep", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lock := workersmock.NewMockSweepLock(ctrl)
		store := newMemoryOutbox()
		store.add(uuid.New(), "x")
		relay := workers.NewOutboxRelay(directUoW{}, store, &recordingPublisher{}, lock, clock.NewRealClock(), discardLogger(), workers.RelayOptions{})

		released := false
		lock.EXPECT().TryAcquire(gomock.Any()).Return(func() { released = true }, true, nil)

		report, err := relay.Sweep(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Published)
		assert.True(t, released)
	})

	t.Run("lock error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lock := workersmock.NewMockSweepLock(ctrl)
		relay := workers.NewOutboxRelay(directUoW{}, newMemoryOutbox(), &recordingPublisher{}, lock, clock.NewRealClock(), discardLogger(), workers.RelayOptions{})

		lock.EXPECT().TryAcquire(gomock.Any()).Return(nil, false, errors.New("pool closed"))

		_, err := relay.Sweep(ctx)
		assert.Error(t, err)
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	store := newMemoryOutbox()
	store.add(uuid.New(), "tick")
	pub := &recordingPublisher{}
	relay := workers.NewOutboxRelay(directUoW{}, store, pub, nil, clock.NewRealClock(), discardLogger(),
		workers.RelayOptions{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		relay.Run(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool { return store.pending() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
	assert.Equal(t, []string{"tick"}, pub.values())
}
