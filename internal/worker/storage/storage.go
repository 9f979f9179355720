package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobboard/internal/worker/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS board_events (
	event_id    UUID PRIMARY KEY,
	event_type  TEXT NOT NULL,
	entity_id   TEXT NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL,
	payload     JSONB,
	worker_id   TEXT NOT NULL,
	received_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS board_events_entity_idx ON board_events (entity_id, occurred_at);
`

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the audit table if it does not exist
func (s *Storage) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create board_events table: %w", err)
	}
	return nil
}

// RecordEvent inserts an audit row. Redelivered events are ignored and
// reported with inserted=false.
func (s *Storage) RecordEvent(ctx context.Context, rec domain.AuditRecord) (bool, error) {
	query := `
		INSERT INTO board_events (event_id, event_type, entity_id, occurred_at, payload, worker_id, received_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::jsonb, $6, $7)
		ON CONFLICT (event_id) DO NOTHING
	`

	res, err := s.db.ExecContext(ctx, query,
		rec.EventID,
		rec.EventType,
		rec.EntityID,
		rec.OccurredAt,
		rec.Payload,
		rec.WorkerID,
		rec.ReceivedAt,
	)
	if err != nil {
		return false, classify(fmt.Errorf("failed to insert event %s: %w", rec.EventID, err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, classify(fmt.Errorf("failed to read rows affected: %w", err))
	}

	if n == 0 {
		s.logger.Debug("Event already recorded",
			slog.String("event_id", rec.EventID),
		)
	}

	return n > 0, nil
}

// classify marks data and constraint errors as permanent; everything else
// (connection loss, timeouts, lock conflicts) is worth another attempt.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "22", "23":
			return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
		}
	}
	return domain.NewRetryableError(err)
}
