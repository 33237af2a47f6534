// Package usecase implements the assignment directory, the assignment matcher, the
// candidate pool and the farm store.
package usecase

import (
	"context"
	"time"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
)

// AssignmentRepository persists one assignments row per farm.
// Implementations must support transaction-aware operations via context propagation.
type AssignmentRepository interface {
	// Get returns the assignment of a farm, with empty slots when no row exists.
	Get(ctx context.Context, farmID string) (*assignmentDomain.Assignment, error)

	// Save replaces both slots of the farm row, creating it when missing.
	Save(ctx context.Context, assignment *assignmentDomain.Assignment, updatedAt time.Time) error

	// EnsureRow creates an empty row for the farm when none exists.
	EnsureRow(ctx context.Context, farmID string, updatedAt time.Time) error

	// FillSlot writes assignee into an empty slot. Returns ErrAlreadyAssigned when the slot
	// was not empty at write time.
	FillSlot(
		ctx context.Context,
		farmID string,
		role assignmentDomain.Role,
		assignee *assignmentDomain.Assignee,
	) error

	// ClearSlot empties a slot and reports whether it was occupied.
	ClearSlot(ctx context.Context, farmID string, role assignmentDomain.Role, updatedAt time.Time) (bool, error)
}

// CandidateRepository reads and maintains the candidate pool.
type CandidateRepository interface {
	// Get returns ErrCandidateNotFound when the pool has no entry for (id, role).
	Get(ctx context.Context, id string, role assignmentDomain.Role) (*assignmentDomain.Candidate, error)

	// List returns active candidates of a role ordered by name.
	List(ctx context.Context, role assignmentDomain.Role, offset, limit int) ([]*assignmentDomain.Candidate, error)

	// Upsert creates or replaces a candidate.
	Upsert(ctx context.Context, candidate *assignmentDomain.Candidate) error
}

// FarmRepository persists farms.
type FarmRepository interface {
	// Get returns ErrFarmNotFound when the farm does not exist.
	Get(ctx context.Context, farmID string) (*assignmentDomain.Farm, error)
	// Create inserts the farm. It is a no-op when a farm with the same ID already exists.
	Create(ctx context.Context, farm *assignmentDomain.Farm) error
	List(ctx context.Context, offset, limit int) ([]*assignmentDomain.Farm, error)
}

// EventPublisher writes domain events to the outbox within the caller's transaction.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// DirectoryUseCase is the canonical per-farm record of assignments.
type DirectoryUseCase interface {
	// Get never fails for an unknown farm; it returns empty slots instead.
	Get(ctx context.Context, farmID string) (*assignmentDomain.Assignment, error)

	// Save replaces the assignment by farm ID. Idempotent.
	Save(ctx context.Context, assignment *assignmentDomain.Assignment) error
}

// MatcherUseCase enforces at most one vet and one supervisor per farm.
type MatcherUseCase interface {
	AssignVet(ctx context.Context, farmID, vetID, vetName, vetPhone string) error
	AssignSupervisor(ctx context.Context, farmID, supervisorID, supervisorName, supervisorPhone string) error

	// RemoveVet empties the vet slot. Removing from an empty slot or unknown farm succeeds.
	RemoveVet(ctx context.Context, farmID string) error
	RemoveSupervisor(ctx context.Context, farmID string) error

	// Assign fills several slots atomically: every placement is validated and every slot is
	// checked before anything is written, and either all slots are filled or none.
	Assign(ctx context.Context, farmID string, placements ...assignmentDomain.Placement) error
}

// CandidateUseCase exposes the candidate pool.
type CandidateUseCase interface {
	List(ctx context.Context, role assignmentDomain.Role, offset, limit int) ([]*assignmentDomain.Candidate, error)
	Upsert(ctx context.Context, candidate *assignmentDomain.Candidate) error
}

// FarmUseCase exposes the farm store.
type FarmUseCase interface {
	Get(ctx context.Context, farmID string) (*assignmentDomain.Farm, error)
	List(ctx context.Context, offset, limit int) ([]*assignmentDomain.Farm, error)

	// Ensure returns the farm, creating it from the given descriptors when it does not exist.
	// An empty farm.ID gets a fresh identifier.
	Ensure(ctx context.Context, farm *assignmentDomain.Farm) (*assignmentDomain.Farm, error)
}
