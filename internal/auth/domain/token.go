package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is a stored bearer token. Only the SHA-256 hash of the plain token is kept.
type Token struct {
	ID          uuid.UUID
	TokenHash   string
	ModeratorID uuid.UUID
	ExpiresAt   time.Time
	RevokedAt   *time.Time
	CreatedAt   time.Time
}

// IsUsable reports whether the token is neither expired nor revoked.
func (t *Token) IsUsable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
