package domain

import (
	"time"

	"github.com/cuongbtq/jobboard/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditRecord is one row of the board_events audit table
type AuditRecord struct {
	EventID    string    `db:"event_id"`
	EventType  string    `db:"event_type"`
	EntityID   string    `db:"entity_id"`
	OccurredAt time.Time `db:"occurred_at"`
	Payload    string    `db:"payload"` // raw JSON, empty when the event had no data
	WorkerID   string    `db:"worker_id"`
	ReceivedAt time.Time `db:"received_at"`
}

// NewAuditRecord stamps an event with the worker that received it
func NewAuditRecord(evt events.BoardEvent, workerID string, receivedAt time.Time) AuditRecord {
	return AuditRecord{
		EventID:    evt.ID,
		EventType:  evt.Type,
		EntityID:   evt.EntityID,
		OccurredAt: evt.OccurredAt,
		Payload:    string(evt.Data),
		WorkerID:   workerID,
		ReceivedAt: receivedAt.UTC(),
	}
}

// EventMessage is a decoded delivery waiting for a pool worker
type EventMessage struct {
	Event    events.BoardEvent
	Delivery amqp.Delivery
}
