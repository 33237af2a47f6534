// Package domain defines the outbox event and the payloads the service emits.
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OutboxEventStatus is the delivery state of an outbox event.
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	// OutboxEventStatusFailed is terminal: the relay gave up after MaxRetries attempts.
	OutboxEventStatusFailed OutboxEventStatus = "failed"
)

// OutboxEvent is a domain event stored in the same transaction as the change it
// describes and delivered later by the relay.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOutboxEvent builds a pending event with payload encoded as JSON.
func NewOutboxEvent(eventType string, payload any) (*OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(data),
		Status:    OutboxEventStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Decode unmarshals the payload into target.
func (e *OutboxEvent) Decode(target any) error {
	if err := json.Unmarshal([]byte(e.Payload), target); err != nil {
		return fmt.Errorf("invalid %s payload: %w", e.EventType, err)
	}
	return nil
}

// MarkProcessed records a successful delivery at now.
func (e *OutboxEvent) MarkProcessed(now time.Time) {
	e.Status = OutboxEventStatusProcessed
	e.ProcessedAt = &now
	e.UpdatedAt = now
}

// MarkAttemptFailed records a failed delivery. Once maxRetries attempts have failed the
// event becomes OutboxEventStatusFailed and is no longer picked up.
func (e *OutboxEvent) MarkAttemptFailed(cause error, maxRetries int, now time.Time) {
	msg := cause.Error()
	e.Retries++
	e.LastError = &msg
	e.UpdatedAt = now
	if e.Retries >= maxRetries {
		e.Status = OutboxEventStatusFailed
	}
}
