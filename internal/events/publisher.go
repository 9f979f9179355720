package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Publisher delivers board events to interested consumers
type Publisher interface {
	Publish(ctx context.Context, evt BoardEvent) error
}

// NoopPublisher drops every event; used when events are disabled
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BoardEvent) error {
	return nil
}

// Broker is the subset of the RabbitMQ client used for publishing
type Broker interface {
	PublishWithRetry(ctx context.Context, routingKey string, body []byte, contentType string) error
}

// BrokerPublisher publishes events as JSON, routed by event type
type BrokerPublisher struct {
	broker Broker
	logger *slog.Logger
}

func NewBrokerPublisher(broker Broker, logger *slog.Logger) *BrokerPublisher {
	return &BrokerPublisher{
		broker: broker,
		logger: logger,
	}
}

func (p *BrokerPublisher) Publish(ctx context.Context, evt BoardEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.broker.PublishWithRetry(ctx, evt.Type, body, "application/json"); err != nil {
		return fmt.Errorf("failed to publish %s: %w", evt.Type, err)
	}

	p.logger.Debug("Board event published",
		slog.String("event_id", evt.ID),
		slog.String("type", evt.Type),
		slog.String("entity_id", evt.EntityID),
	)

	return nil
}
