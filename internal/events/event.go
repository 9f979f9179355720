// Package events describes the notifications emitted after board mutations
// and publishes them to the message broker.
package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Event types double as RabbitMQ routing keys
const (
	CompanyCreated = "company.created"
	CompanyUpdated = "company.updated"
	CompanyDeleted = "company.deleted"
	JobCreated     = "job.created"
	JobUpdated     = "job.updated"
	JobDeactivated = "job.deactivated"
)

var knownTypes = []string{CompanyCreated, CompanyUpdated, CompanyDeleted, JobCreated, JobUpdated, JobDeactivated}

// ErrMalformedEvent is returned by Decode for bodies that are not board events
var ErrMalformedEvent = errors.New("malformed board event")

// BoardEvent is the message body published for every mutation
type BoardEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	EntityID   string          `json:"entityId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// New builds an event carrying data as its JSON payload
func New(eventType, entityID string, data any, now time.Time) (BoardEvent, error) {
	evt := BoardEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: now.UTC(),
	}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return BoardEvent{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		evt.Data = raw
	}

	return evt, nil
}

// Decode parses and sanity-checks a message body
func Decode(body []byte) (BoardEvent, error) {
	var evt BoardEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return BoardEvent{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if _, err := uuid.Parse(evt.ID); err != nil {
		return BoardEvent{}, fmt.Errorf("%w: invalid id %q", ErrMalformedEvent, evt.ID)
	}

	if !slices.Contains(knownTypes, evt.Type) {
		return BoardEvent{}, fmt.Errorf("%w: unknown type %q", ErrMalformedEvent, evt.Type)
	}

	if evt.EntityID == "" {
		return BoardEvent{}, fmt.Errorf("%w: missing entityId", ErrMalformedEvent)
	}

	return evt, nil
}
