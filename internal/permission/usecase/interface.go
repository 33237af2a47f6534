// Package usecase implements the grant store and the permission resolver.
package usecase

import (
	"context"
	"time"

	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

// GrantRepository persists grants as one row per (moderator, key).
// Implementations must support transaction-aware operations via context propagation.
type GrantRepository interface {
	// Get returns the stored grant. A moderator without rows gets an empty grant.
	Get(ctx context.Context, moderatorID string) (*permissionDomain.Grant, error)

	// Upsert writes a single key, leaving every other key untouched.
	Upsert(
		ctx context.Context,
		moderatorID, id string,
		kind permissionDomain.Kind,
		enabled bool,
		updatedAt time.Time,
	) error

	// DeleteAll removes every key of a moderator.
	DeleteAll(ctx context.Context, moderatorID string) error

	// Insert writes every key of the grant. Callers delete the previous rows first.
	Insert(ctx context.Context, grant *permissionDomain.Grant, updatedAt time.Time) error
}

// EventPublisher writes domain events to the outbox within the caller's transaction.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// GrantUseCase manages the recorded grants of moderators.
type GrantUseCase interface {
	// Get returns the grant of a moderator, empty when nothing was ever granted.
	Get(ctx context.Context, moderatorID string) (*permissionDomain.Grant, error)

	// SetCapability records the boolean of a single category.
	// Returns ErrUnknownCapability when capabilityID is not a catalog category.
	SetCapability(ctx context.Context, moderatorID, capabilityID string, enabled bool) error

	// SetSubOption records the boolean of a single sub-option.
	// Returns ErrUnknownCapability when subOptionID is not a sub-option of capabilityID.
	SetSubOption(ctx context.Context, moderatorID, capabilityID, subOptionID string, enabled bool) error

	// Replace swaps the whole grant atomically. Returns ErrInvalidGrantSet listing every
	// unknown key, in which case the stored grant is left as it was.
	Replace(ctx context.Context, moderatorID string, grant *permissionDomain.Grant) error
}

// ResolverUseCase derives effective permissions from the stored grants.
type ResolverUseCase interface {
	// Resolve computes the effective permission set. Nothing is cached between calls.
	Resolve(ctx context.Context, moderatorID string) (*permissionDomain.EffectivePermissionSet, error)

	// HasCapability reports whether id is in the effective permission set.
	HasCapability(ctx context.Context, moderatorID, id string) (bool, error)
}
