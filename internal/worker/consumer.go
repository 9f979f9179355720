package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobboard/internal/events"
	"github.com/cuongbtq/jobboard/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// setupConsumer starts consuming with manual acknowledgement
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	deliveries, err := w.source.Consume(w.consumerTag, w.prefetchCount)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("RabbitMQ consumer started",
		slog.String("consumer_tag", w.consumerTag),
		slog.String("worker_id", w.workerID),
		slog.Int("prefetch_count", w.prefetchCount),
	)

	return deliveries, nil
}

// startMessageDispatcher decodes deliveries and hands them to the pool.
// Undecodable messages are rejected here without requeue.
func (w *Worker) startMessageDispatcher(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer close(w.eventsChan)

	w.logger.Info("Message dispatcher started",
		slog.String("worker_id", w.workerID),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Message dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			evt, err := events.Decode(delivery.Body)
			if err != nil {
				w.logger.Error("Rejecting malformed event",
					slog.String("error", err.Error()),
					slog.String("routing_key", delivery.RoutingKey),
					slog.String("body", string(delivery.Body)),
				)
				w.settle(delivery, domain.OutcomeRejected)
				continue
			}

			if delivery.RoutingKey != "" && delivery.RoutingKey != evt.Type {
				w.logger.Warn("Routing key does not match event type",
					slog.String("routing_key", delivery.RoutingKey),
					slog.String("type", evt.Type),
				)
			}

			msg := &domain.EventMessage{
				Event:    evt,
				Delivery: delivery,
			}

			select {
			case w.eventsChan <- msg:
				w.logger.Debug("Event dispatched to worker pool",
					slog.String("event_id", evt.ID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				w.logger.Info("Message dispatcher stopped while dispatching event")
				w.settle(delivery, domain.OutcomeRequeued)
				return
			}
		}
	}
}
