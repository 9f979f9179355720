package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobboard/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}
}

// workerLoop handles events until the dispatcher closes eventsChan or ctx is
// canceled. Events still buffered at cancellation stay unacknowledged and are
// redelivered by the broker.
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Debug("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Worker goroutine stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case msg, ok := <-w.eventsChan:
			if !ok {
				w.logger.Debug("Worker goroutine stopping - eventsChan closed",
					slog.String("worker_name", workerName),
				)
				return
			}

			inserted, err := w.processEvent(ctx, msg)
			outcome := outcomeFor(inserted, err)

			if err != nil {
				w.logger.Error("Event processing failed",
					slog.String("worker_name", workerName),
					slog.String("event_id", msg.Event.ID),
					slog.String("type", msg.Event.Type),
					slog.String("outcome", outcome),
					slog.String("error", err.Error()),
				)
			}

			w.settle(msg.Delivery, outcome)
		}
	}
}

// settle acknowledges a delivery according to its outcome
func (w *Worker) settle(delivery amqp.Delivery, outcome string) {
	var err error
	switch outcome {
	case domain.OutcomeRecorded, domain.OutcomeDuplicate:
		err = delivery.Ack(false)
	case domain.OutcomeRequeued:
		err = delivery.Nack(false, true)
	default:
		err = delivery.Nack(false, false)
	}

	if err != nil {
		w.logger.Error("Failed to settle delivery",
			slog.Uint64("delivery_tag", delivery.DeliveryTag),
			slog.String("outcome", outcome),
			slog.String("error", err.Error()),
		)
		return
	}

	w.stats.add(outcome)
}

func outcomeFor(inserted bool, err error) string {
	switch {
	case err == nil && inserted:
		return domain.OutcomeRecorded
	case err == nil:
		return domain.OutcomeDuplicate
	case shouldRequeue(err):
		return domain.OutcomeRequeued
	case errors.Is(err, domain.ErrInvalidPayload):
		return domain.OutcomeRejected
	default:
		return domain.OutcomeDropped
	}
}

// shouldRequeue determines if an event should be redelivered based on the error type
func shouldRequeue(err error) bool {
	if errors.Is(err, domain.ErrInvalidPayload) {
		return false
	}

	// handle timeout or shutdown while writing
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var retryableErr *domain.RetryableError
	return errors.As(err, &retryableErr)
}
