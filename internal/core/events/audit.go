package events

import (
	"context"
	"log/slog"
)

// AuditedEventTypes are recorded to the log by RegisterAuditLog.
var AuditedEventTypes = []string{
	EventTypeAdjustmentReviewed,
	EventTypeTimeOffReviewed,
	EventTypeLeaveAccrued,
	EventTypeUserDeactivated,
}

// RegisterAuditLog writes one structured line per HR-side change.
func RegisterAuditLog(bus *EventBus, logger *slog.Logger) {
	for _, eventType := range AuditedEventTypes {
		bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
			logger.InfoContext(ctx, "audit",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"occurred_at", event.OccurredAt(),
				"payload", event.Payload())
			return nil
		})
	}
}
