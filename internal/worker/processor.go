package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobboard/internal/worker/domain"
)

// processEvent writes one event to the audit sink within the handle timeout
func (w *Worker) processEvent(ctx context.Context, msg *domain.EventMessage) (bool, error) {
	rec := domain.NewAuditRecord(msg.Event, w.workerID, w.now())

	if w.handleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.handleTimeout)
		defer cancel()
	}

	inserted, err := w.sink.RecordEvent(ctx, rec)
	if err != nil {
		return false, fmt.Errorf("failed to record %s %s: %w", rec.EventType, rec.EventID, err)
	}

	w.logger.Info("Board event recorded",
		slog.String("event_id", rec.EventID),
		slog.String("type", rec.EventType),
		slog.String("entity_id", rec.EntityID),
		slog.Bool("duplicate", !inserted),
	)

	return inserted, nil
}
