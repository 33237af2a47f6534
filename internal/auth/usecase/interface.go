// Package usecase defines business logic interfaces for moderator authentication and
// audit operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
)

// ModeratorRepository defines persistence operations for moderator accounts.
// Implementations must support transaction-aware operations via context propagation.
type ModeratorRepository interface {
	// Create stores a new moderator in the repository.
	Create(ctx context.Context, moderator *authDomain.Moderator) error

	// Update modifies name, active and root flags of an existing moderator.
	Update(ctx context.Context, moderator *authDomain.Moderator) error

	// Get retrieves a moderator by ID. Returns ErrModeratorNotFound if not found.
	Get(ctx context.Context, moderatorID uuid.UUID) (*authDomain.Moderator, error)

	// List returns moderators ordered by creation time, oldest first.
	List(ctx context.Context, offset, limit int) ([]*authDomain.Moderator, error)

	// UpdateLockState stores the failed attempt counter and lock deadline of a moderator.
	UpdateLockState(
		ctx context.Context,
		moderatorID uuid.UUID,
		failedAttempts int,
		lockedUntil *time.Time,
	) error
}

// TokenRepository defines persistence operations for bearer tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *authDomain.Token) error

	// GetByTokenHash retrieves a token by its hash. Returns ErrTokenNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)

	// DeleteExpired removes tokens that expired before the given instant, or only counts
	// them when dryRun is true.
	DeleteExpired(ctx context.Context, before time.Time, dryRun bool) (int64, error)
}

// AuditLogRepository defines persistence operations for audit logs.
type AuditLogRepository interface {
	Create(ctx context.Context, auditLog *authDomain.AuditLog) error

	// List returns audit logs newest first. Nil boundaries mean no filter; both are inclusive.
	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*authDomain.AuditLog, error)

	// DeleteOlderThan removes audit logs created before the given instant, or only counts
	// them when dryRun is true.
	DeleteOlderThan(ctx context.Context, before time.Time, dryRun bool) (int64, error)
}

// ModeratorUseCase defines moderator account management.
type ModeratorUseCase interface {
	// Create generates a moderator with a random secret. The plain secret is only returned once.
	Create(
		ctx context.Context,
		input *authDomain.CreateModeratorInput,
	) (*authDomain.CreateModeratorOutput, error)

	Get(ctx context.Context, moderatorID uuid.UUID) (*authDomain.Moderator, error)

	List(ctx context.Context, offset, limit int) ([]*authDomain.Moderator, error)

	// Deactivate disables the account. Existing tokens stop authenticating immediately.
	Deactivate(ctx context.Context, moderatorID uuid.UUID) error

	// Unlock clears the failed attempt counter and any active lockout.
	Unlock(ctx context.Context, moderatorID uuid.UUID) error
}

// TokenUseCase defines bearer token issuance and validation.
type TokenUseCase interface {
	// Issue exchanges moderator credentials for a bearer token. Repeated failures lock the
	// account for the configured duration.
	Issue(ctx context.Context, input *authDomain.IssueTokenInput) (*authDomain.IssueTokenOutput, error)

	// Authenticate resolves a token hash to its active moderator.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Moderator, error)

	// PurgeExpired removes tokens expired for longer than olderThan.
	PurgeExpired(ctx context.Context, olderThan time.Duration, dryRun bool) (int64, error)
}

// AuditLogUseCase defines recording and verification of audit logs.
type AuditLogUseCase interface {
	// Create records an allowed capability check. The record is signed when a signing key
	// is configured.
	Create(
		ctx context.Context,
		requestID uuid.UUID,
		moderatorID uuid.UUID,
		capability string,
		path string,
		metadata map[string]any,
	) error

	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*authDomain.AuditLog, error)

	// VerifyBatch checks the signatures of every log created in [startTime, endTime].
	VerifyBatch(ctx context.Context, startTime, endTime time.Time) (*authDomain.VerificationReport, error)

	// DeleteOlderThan removes logs older than the given number of days.
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)
}
