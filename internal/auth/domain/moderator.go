// Package domain defines moderator accounts, bearer tokens and signed audit records.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Moderator is a back-office account. Root moderators bypass capability checks and are
// the only ones allowed to edit grants and manage other moderators.
type Moderator struct {
	ID             uuid.UUID
	Name           string
	Secret         string //nolint:gosec // hashed secret, never plaintext
	IsActive       bool
	IsRoot         bool
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
}

// IsLocked reports whether the account is locked at the given instant.
func (m *Moderator) IsLocked(now time.Time) bool {
	return m.LockedUntil != nil && now.Before(*m.LockedUntil)
}

// CreateModeratorInput contains the parameters for creating a moderator. The secret is
// generated by the service and cannot be chosen by the caller.
type CreateModeratorInput struct {
	Name   string
	IsRoot bool
}

// CreateModeratorOutput carries the one-time plain secret of a new moderator.
type CreateModeratorOutput struct {
	ID          uuid.UUID
	PlainSecret string
}

// IssueTokenInput contains the credentials presented to obtain a bearer token.
type IssueTokenInput struct {
	ModeratorID uuid.UUID
	Secret      string
}

// IssueTokenOutput carries the one-time plain bearer token.
type IssueTokenOutput struct {
	PlainToken string
	ExpiresAt  time.Time
}
