// Package usecase implements the supervision request workflow.
package usecase

import (
	"context"

	"github.com/google/uuid"

	supervisionDomain "github.com/allisson/vetdesk/internal/supervision/domain"
)

// RequestRepository persists supervision requests.
type RequestRepository interface {
	Create(ctx context.Context, request *supervisionDomain.Request) error

	// Get returns ErrRequestNotFound when no request has the ID.
	Get(ctx context.Context, id uuid.UUID) (*supervisionDomain.Request, error)

	// GetForUpdate is Get with a row lock held until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*supervisionDomain.Request, error)

	// Decide stores the decision fields of a request that is still pending in storage.
	// Returns ErrNotPending when it is not.
	Decide(ctx context.Context, request *supervisionDomain.Request) error

	// List returns requests oldest first, optionally filtered by status.
	List(
		ctx context.Context,
		status *supervisionDomain.Status,
		offset, limit int,
	) ([]*supervisionDomain.Request, error)
}

// EventPublisher writes domain events to the outbox within the caller's transaction.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// WorkflowUseCase drives requests from pending to approved or rejected.
type WorkflowUseCase interface {
	// Submit validates the applicant contact fields and the farm reference and stores a
	// pending request.
	Submit(ctx context.Context, input *supervisionDomain.SubmitInput) (*supervisionDomain.Request, error)

	Get(ctx context.Context, id uuid.UUID) (*supervisionDomain.Request, error)
	List(
		ctx context.Context,
		status *supervisionDomain.Status,
		offset, limit int,
	) ([]*supervisionDomain.Request, error)

	// Approve creates the target farm when needed and assigns the applicant to every requested
	// slot. Either everything is written or the request stays pending.
	Approve(ctx context.Context, id uuid.UUID, decidedBy string) (*supervisionDomain.Request, error)

	Reject(ctx context.Context, id uuid.UUID, decidedBy string) (*supervisionDomain.Request, error)
}
