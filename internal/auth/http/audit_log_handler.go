package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/vetdesk/internal/auth/http/dto"
	authUseCase "github.com/allisson/vetdesk/internal/auth/usecase"
	"github.com/allisson/vetdesk/internal/httputil"
)

var errInvertedRange = errors.New("created_at_from must be before or equal to created_at_to")

// AuditLogHandler serves the audit trail to root moderators.
type AuditLogHandler struct {
	auditLogUseCase authUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler with required dependencies.
func NewAuditLogHandler(auditLogUseCase authUseCase.AuditLogUseCase, logger *slog.Logger) *AuditLogHandler {
	return &AuditLogHandler{auditLogUseCase: auditLogUseCase, logger: logger}
}

// ListHandler lists audit logs newest first.
// GET /v1/audit-logs?offset=0&limit=50&created_at_from=...&created_at_to=...
// Both bounds are optional, inclusive and RFC3339; they are compared in UTC.
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	// Parse pagination parameters
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Parse optional time filters
	from, to, err := parseTimeRange(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Call use case
	auditLogs, err := h.auditLogUseCase.List(c.Request.Context(), offset, limit, from, to)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditLogsToListResponse(auditLogs))
}

// parseTimeRange reads created_at_from and created_at_to. Missing or empty values are nil.
func parseTimeRange(c *gin.Context) (from, to *time.Time, err error) {
	bounds := [2]*time.Time{}
	for i, key := range [2]string{"created_at_from", "created_at_to"} {
		raw, ok := c.GetQuery(key)
		if !ok || raw == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid %s format: must be RFC3339 (e.g., 2026-02-01T00:00:00Z)", key)
		}
		parsed = parsed.UTC()
		bounds[i] = &parsed
	}

	from, to = bounds[0], bounds[1]
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, errInvertedRange
	}
	return from, to, nil
}
