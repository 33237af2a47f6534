package dto

import (
	"time"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
)

// IssueTokenResponse carries the one-time plain bearer token.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateModeratorResponse carries the one-time plain secret of a new moderator.
type CreateModeratorResponse struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

// ModeratorResponse represents a moderator. The hashed secret is never exposed.
type ModeratorResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	IsActive       bool       `json:"is_active"`
	IsRoot         bool       `json:"is_root"`
	FailedAttempts int        `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MapModeratorToResponse converts a domain moderator to its API representation.
func MapModeratorToResponse(moderator *authDomain.Moderator) ModeratorResponse {
	return ModeratorResponse{
		ID:             moderator.ID.String(),
		Name:           moderator.Name,
		IsActive:       moderator.IsActive,
		IsRoot:         moderator.IsRoot,
		FailedAttempts: moderator.FailedAttempts,
		LockedUntil:    moderator.LockedUntil,
		CreatedAt:      moderator.CreatedAt,
	}
}

// ListModeratorsResponse represents a page of moderators.
type ListModeratorsResponse struct {
	Data []ModeratorResponse `json:"data"`
}

// MapModeratorsToListResponse converts domain moderators to a list response.
func MapModeratorsToListResponse(moderators []*authDomain.Moderator) ListModeratorsResponse {
	data := make([]ModeratorResponse, 0, len(moderators))
	for _, moderator := range moderators {
		data = append(data, MapModeratorToResponse(moderator))
	}
	return ListModeratorsResponse{Data: data}
}

// AuditLogResponse represents an audit log entry.
type AuditLogResponse struct {
	ID          string         `json:"id"`
	RequestID   string         `json:"request_id"`
	ModeratorID string         `json:"moderator_id"`
	Capability  string         `json:"capability"`
	Path        string         `json:"path"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Signed      bool           `json:"signed"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ListAuditLogsResponse represents a page of audit logs.
type ListAuditLogsResponse struct {
	Data []AuditLogResponse `json:"data"`
}

// MapAuditLogsToListResponse converts domain audit logs to a list response.
func MapAuditLogsToListResponse(auditLogs []*authDomain.AuditLog) ListAuditLogsResponse {
	data := make([]AuditLogResponse, 0, len(auditLogs))
	for _, auditLog := range auditLogs {
		data = append(data, AuditLogResponse{
			ID:          auditLog.ID.String(),
			RequestID:   auditLog.RequestID.String(),
			ModeratorID: auditLog.ModeratorID.String(),
			Capability:  auditLog.Capability,
			Path:        auditLog.Path,
			Metadata:    auditLog.Metadata,
			Signed:      auditLog.IsSigned(),
			CreatedAt:   auditLog.CreatedAt,
		})
	}
	return ListAuditLogsResponse{Data: data}
}
