package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cuongbtq/jobboard/internal/events"
	"github.com/cuongbtq/jobboard/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settlement struct {
	acked   bool
	requeue bool
}

type fakeAcknowledger struct {
	mu      sync.Mutex
	settled map[uint64]settlement
}

func newFakeAcknowledger() *fakeAcknowledger {
	return &fakeAcknowledger{settled: map[uint64]settlement{}}
}

func (a *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settled[tag] = settlement{acked: true}
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settled[tag] = settlement{requeue: requeue}
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *fakeAcknowledger) get(tag uint64) (settlement, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.settled[tag]
	return s, ok
}

type fakeSource struct {
	deliveries chan amqp.Delivery
	err        error
	tag        string
	prefetch   int
}

func (s *fakeSource) Consume(consumerTag string, prefetchCount int) (<-chan amqp.Delivery, error) {
	s.tag = consumerTag
	s.prefetch = prefetchCount
	return s.deliveries, s.err
}

// fakeSink fails every record whose entity id is a key of failures
type fakeSink struct {
	mu       sync.Mutex
	records  map[string]domain.AuditRecord
	failures map[string]error
}

func newFakeSink() *fakeSink {
	return &fakeSink{records: map[string]domain.AuditRecord{}, failures: map[string]error{}}
}

func (s *fakeSink) RecordEvent(_ context.Context, rec domain.AuditRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.failures[rec.EntityID]; ok {
		return false, err
	}
	if _, ok := s.records[rec.EventID]; ok {
		return false, nil
	}
	s.records[rec.EventID] = rec
	return true, nil
}

var receivedAt = time.Date(2025, 6, 1, 12, 0, 5, 0, time.UTC)

func newTestWorker(source Source, sink AuditSink) *Worker {
	return NewWorker(&Config{
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Source:        source,
		Sink:          sink,
		WorkerID:      "worker-test",
		Concurrency:   3,
		BufferSize:    8,
		PrefetchCount: 16,
		HandleTimeout: time.Second,
		Now:           func() time.Time { return receivedAt },
	})
}

func eventDelivery(t *testing.T, ack amqp.Acknowledger, tag uint64, evt events.BoardEvent) amqp.Delivery {
	t.Helper()

	body, err := json.Marshal(evt)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, RoutingKey: evt.Type, Body: body}
}

func mustEvent(t *testing.T, eventType, entityID string, data any) events.BoardEvent {
	t.Helper()

	evt, err := events.New(eventType, entityID, data, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return evt
}

func TestWorker_SettlesEveryDelivery(t *testing.T) {
	ack := newFakeAcknowledger()
	source := &fakeSource{deliveries: make(chan amqp.Delivery, 10)}
	sink := newFakeSink()
	sink.failures["job-down"] = domain.NewRetryableError(errors.New("connection reset by peer"))
	sink.failures["job-bad"] = errors.Join(domain.ErrInvalidPayload, errors.New("invalid input syntax for type json"))
	sink.failures["job-odd"] = errors.New("something unexpected")

	created := mustEvent(t, events.JobCreated, "job-10", map[string]string{"title": "Fleet Coordinator"})
	deleted := mustEvent(t, events.CompanyDeleted, "company-1", map[string]any{"deactivatedJobIds": []string{"job-1", "job-8"}})

	source.deliveries <- eventDelivery(t, ack, 1, created)
	source.deliveries <- eventDelivery(t, ack, 2, created) // redelivery
	source.deliveries <- eventDelivery(t, ack, 3, deleted)
	source.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 4, Body: []byte(`{"type":"job.created"}`)}
	source.deliveries <- eventDelivery(t, ack, 5, mustEvent(t, events.JobUpdated, "job-down", nil))
	source.deliveries <- eventDelivery(t, ack, 6, mustEvent(t, events.JobUpdated, "job-bad", nil))
	source.deliveries <- eventDelivery(t, ack, 7, mustEvent(t, events.JobDeactivated, "job-odd", nil))
	close(source.deliveries)

	w := newTestWorker(source, sink)

	err := w.Start(context.Background())
	require.ErrorIs(t, err, domain.ErrDeliveriesClosed)
	w.Stop()

	assert.Equal(t, "worker-test", source.tag)
	assert.Equal(t, 16, source.prefetch)

	want := map[uint64]settlement{
		1: {acked: true},
		2: {acked: true},
		3: {acked: true},
		4: {requeue: false},
		5: {requeue: true},
		6: {requeue: false},
		7: {requeue: false},
	}
	for tag, expected := range want {
		got, ok := ack.get(tag)
		require.True(t, ok, "delivery %d was never settled", tag)
		assert.Equal(t, expected, got, "delivery %d", tag)
	}

	require.Len(t, sink.records, 2)
	rec := sink.records[deleted.ID]
	assert.Equal(t, events.CompanyDeleted, rec.EventType)
	assert.Equal(t, "company-1", rec.EntityID)
	assert.Equal(t, "worker-test", rec.WorkerID)
	assert.Equal(t, receivedAt, rec.ReceivedAt)
	assert.JSONEq(t, `{"deactivatedJobIds":["job-1","job-8"]}`, rec.Payload)

	assert.Equal(t, int64(2), w.stats.recorded.Load())
	assert.Equal(t, int64(1), w.stats.duplicate.Load())
	assert.Equal(t, int64(2), w.stats.rejected.Load())
	assert.Equal(t, int64(1), w.stats.requeued.Load())
	assert.Equal(t, int64(1), w.stats.dropped.Load())
}

func TestWorker_StopsOnCancel(t *testing.T) {
	source := &fakeSource{deliveries: make(chan amqp.Delivery)}
	w := newTestWorker(source, newFakeSink())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
	w.Stop()
	w.Stop()
}

func TestWorker_ConsumeFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("not connected to RabbitMQ")}
	w := newTestWorker(source, newFakeSink())

	err := w.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start consuming")
}

func TestShouldRequeue(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "retryable", err: domain.NewRetryableError(errors.New("conn reset")), want: true},
		{name: "wrapped retryable", err: errors.Join(errors.New("ctx"), domain.NewRetryableError(errors.New("x"))), want: true},
		{name: "handle timeout", err: context.DeadlineExceeded, want: true},
		{name: "shutdown", err: context.Canceled, want: true},
		{name: "invalid payload", err: domain.ErrInvalidPayload, want: false},
		{name: "unknown", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRequeue(tt.err))
		})
	}
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, domain.OutcomeRecorded, outcomeFor(true, nil))
	assert.Equal(t, domain.OutcomeDuplicate, outcomeFor(false, nil))
	assert.Equal(t, domain.OutcomeRequeued, outcomeFor(false, context.DeadlineExceeded))
	assert.Equal(t, domain.OutcomeRejected, outcomeFor(false, domain.ErrInvalidPayload))
	assert.Equal(t, domain.OutcomeDropped, outcomeFor(false, errors.New("boom")))
}
