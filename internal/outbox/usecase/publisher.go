package usecase

import (
	"context"

	apperrors "github.com/allisson/vetdesk/internal/errors"
	"github.com/allisson/vetdesk/internal/outbox/domain"
)

// Publisher writes domain events to the outbox. Callers publish inside their own
// transaction so an event exists if and only if the change it describes was committed.
type Publisher struct {
	outboxRepo OutboxEventRepository
}

// NewPublisher creates a Publisher backed by the given repository.
func NewPublisher(outboxRepo OutboxEventRepository) *Publisher {
	return &Publisher{outboxRepo: outboxRepo}
}

// Publish encodes payload and stores it as a pending event of the given type.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) error {
	event, err := domain.NewOutboxEvent(eventType, payload)
	if err != nil {
		return apperrors.Wrapf(err, "failed to encode %s event", eventType)
	}

	return p.outboxRepo.Create(ctx, event)
}
