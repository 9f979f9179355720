package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cuongbtq/jobboard/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Source delivers board events from the broker
type Source interface {
	Consume(consumerTag string, prefetchCount int) (<-chan amqp.Delivery, error)
}

// AuditSink stores received events. inserted is false for an event that was
// already stored.
type AuditSink interface {
	RecordEvent(ctx context.Context, rec domain.AuditRecord) (inserted bool, err error)
}

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	Source        Source
	Sink          AuditSink
	WorkerID      string
	ConsumerTag   string
	Concurrency   int
	BufferSize    int
	PrefetchCount int
	HandleTimeout time.Duration
	StatsInterval time.Duration
	Now           func() time.Time
}

// Worker consumes board events and records them in the audit table
type Worker struct {
	logger        *slog.Logger
	source        Source
	sink          AuditSink
	workerID      string
	consumerTag   string
	concurrency   int
	prefetchCount int
	handleTimeout time.Duration
	statsInterval time.Duration
	now           func() time.Time

	eventsChan chan *domain.EventMessage
	wg         sync.WaitGroup
	stopChan   chan struct{}
	stopOnce   sync.Once
	stats      stats
}

type stats struct {
	recorded  atomic.Int64
	duplicate atomic.Int64
	rejected  atomic.Int64
	requeued  atomic.Int64
	dropped   atomic.Int64
}

func (s *stats) add(outcome string) {
	switch outcome {
	case domain.OutcomeRecorded:
		s.recorded.Add(1)
	case domain.OutcomeDuplicate:
		s.duplicate.Add(1)
	case domain.OutcomeRejected:
		s.rejected.Add(1)
	case domain.OutcomeRequeued:
		s.requeued.Add(1)
	case domain.OutcomeDropped:
		s.dropped.Add(1)
	}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	consumerTag := cfg.ConsumerTag
	if consumerTag == "" {
		consumerTag = cfg.WorkerID
	}

	return &Worker{
		logger:        cfg.Logger,
		source:        cfg.Source,
		sink:          cfg.Sink,
		workerID:      cfg.WorkerID,
		consumerTag:   consumerTag,
		concurrency:   max(cfg.Concurrency, 1),
		prefetchCount: cfg.PrefetchCount,
		handleTimeout: cfg.HandleTimeout,
		statsInterval: cfg.StatsInterval,
		now:           now,
		eventsChan:    make(chan *domain.EventMessage, max(cfg.BufferSize, 1)),
		stopChan:      make(chan struct{}),
	}
}

// Start consumes until ctx is canceled. It returns domain.ErrDeliveriesClosed
// if the broker closes the delivery channel first.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("handle_timeout", w.handleTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return err
	}

	w.spawnWorkerPool(ctx)

	if w.statsInterval > 0 {
		w.wg.Add(1)
		go w.reportStats(ctx)
	}

	w.startMessageDispatcher(ctx, deliveries)

	if ctx.Err() != nil {
		w.logger.Info("Worker context canceled, stopping...")
		return nil
	}

	return domain.ErrDeliveriesClosed
}

// Stop gracefully stops the worker and waits for in-flight events
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	w.logStats()
	w.logger.Info("Worker stopped")
}

// reportStats periodically logs delivery outcomes
func (w *Worker) reportStats(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.logStats()
		}
	}
}

func (w *Worker) logStats() {
	w.logger.Info("Worker stats",
		slog.String("worker_id", w.workerID),
		slog.Int64(domain.OutcomeRecorded, w.stats.recorded.Load()),
		slog.Int64(domain.OutcomeDuplicate, w.stats.duplicate.Load()),
		slog.Int64(domain.OutcomeRejected, w.stats.rejected.Load()),
		slog.Int64(domain.OutcomeRequeued, w.stats.requeued.Load()),
		slog.Int64(domain.OutcomeDropped, w.stats.dropped.Load()),
		slog.Int("queued", len(w.eventsChan)),
	)
}
