package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records a capability check that let a moderator through.
type AuditLog struct {
	ID          uuid.UUID
	RequestID   uuid.UUID
	ModeratorID uuid.UUID
	Capability  string
	Path        string
	Metadata    map[string]any
	Signature   []byte
	CreatedAt   time.Time
}

// IsSigned reports whether the record carries a signature.
func (a *AuditLog) IsSigned() bool {
	return len(a.Signature) > 0
}

// VerificationReport summarizes a batch signature check.
type VerificationReport struct {
	TotalChecked  int64
	SignedCount   int64
	UnsignedCount int64
	ValidCount    int64
	InvalidCount  int64
	InvalidLogs   []uuid.UUID
}
