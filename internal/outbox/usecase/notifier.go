package usecase

import (
	"context"
	"log/slog"

	"github.com/allisson/vetdesk/internal/outbox/domain"
)

// Notifier delivers decoded events to the outside world (push, SMS, e-mail, cache
// invalidation). Returning an error schedules a retry.
type Notifier interface {
	GrantChanged(ctx context.Context, event domain.GrantChanged) error
	AssignmentChanged(ctx context.Context, event domain.AssignmentChanged) error
	RequestDecided(ctx context.Context, event domain.RequestDecided) error
}

// NotifierEventProcessor decodes outbox payloads and dispatches them to a Notifier.
type NotifierEventProcessor struct {
	notifier Notifier
	logger   *slog.Logger
}

// NewNotifierEventProcessor creates a NotifierEventProcessor.
func NewNotifierEventProcessor(notifier Notifier, logger *slog.Logger) *NotifierEventProcessor {
	return &NotifierEventProcessor{
		notifier: notifier,
		logger:   logger,
	}
}

// Process decodes the event payload by type and hands it to the notifier. Unknown event
// types are logged and acknowledged.
func (p *NotifierEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.EventType {
	case domain.EventTypeGrantChanged:
		var payload domain.GrantChanged
		if err := event.Decode(&payload); err != nil {
			return err
		}
		return p.notifier.GrantChanged(ctx, payload)

	case domain.EventTypeAssignmentChanged:
		var payload domain.AssignmentChanged
		if err := event.Decode(&payload); err != nil {
			return err
		}
		return p.notifier.AssignmentChanged(ctx, payload)

	case domain.EventTypeRequestDecided:
		var payload domain.RequestDecided
		if err := event.Decode(&payload); err != nil {
			return err
		}
		return p.notifier.RequestDecided(ctx, payload)

	default:
		if p.logger != nil {
			p.logger.Warn("unknown event type", slog.String("event_type", event.EventType))
		}
		return nil
	}
}

// LogNotifier is the default Notifier; it records every event in the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// GrantChanged logs the grant change.
func (n *LogNotifier) GrantChanged(ctx context.Context, event domain.GrantChanged) error {
	n.logger.InfoContext(ctx, "grant changed", slog.String("moderator_id", event.ModeratorID))
	return nil
}

// AssignmentChanged logs the assignment change.
func (n *LogNotifier) AssignmentChanged(ctx context.Context, event domain.AssignmentChanged) error {
	n.logger.InfoContext(ctx, "assignment changed",
		slog.String("farm_id", event.FarmID),
		slog.String("role", event.Role),
		slog.String("assignee_id", event.AssigneeID),
	)
	return nil
}

// RequestDecided logs the decision.
func (n *LogNotifier) RequestDecided(ctx context.Context, event domain.RequestDecided) error {
	n.logger.InfoContext(ctx, "supervision request decided",
		slog.String("request_id", event.RequestID),
		slog.String("status", event.Status),
	)
	return nil
}
