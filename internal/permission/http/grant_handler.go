package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/vetdesk/internal/httputil"
	"github.com/allisson/vetdesk/internal/permission/http/dto"
	permissionUseCase "github.com/allisson/vetdesk/internal/permission/usecase"
	customValidation "github.com/allisson/vetdesk/internal/validation"
)

// GrantHandler handles HTTP requests for moderator grants. All routes are root only.
type GrantHandler struct {
	grantUseCase permissionUseCase.GrantUseCase
	logger       *slog.Logger
}

// NewGrantHandler creates a new grant handler with required dependencies.
func NewGrantHandler(grantUseCase permissionUseCase.GrantUseCase, logger *slog.Logger) *GrantHandler {
	return &GrantHandler{
		grantUseCase: grantUseCase,
		logger:       logger,
	}
}

// GetHandler returns the recorded grant of a moderator.
// GET /v1/moderators/:id/grant
func (h *GrantHandler) GetHandler(c *gin.Context) {
	moderatorID, ok := parseModeratorID(c, h.logger)
	if !ok {
		return
	}

	grant, err := h.grantUseCase.Get(c.Request.Context(), moderatorID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGrantToResponse(grant))
}

// ReplaceHandler swaps the whole grant of a moderator.
// PUT /v1/moderators/:id/grant - Returns 204 No Content.
func (h *GrantHandler) ReplaceHandler(c *gin.Context) {
	moderatorID, ok := parseModeratorID(c, h.logger)
	if !ok {
		return
	}

	var req dto.ReplaceGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.grantUseCase.Replace(c.Request.Context(), moderatorID, req.ToDomain(moderatorID)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetCapabilityHandler records the boolean of a single category.
// PUT /v1/moderators/:id/grant/capabilities/:capability - Returns 204 No Content.
func (h *GrantHandler) SetCapabilityHandler(c *gin.Context) {
	moderatorID, ok := parseModeratorID(c, h.logger)
	if !ok {
		return
	}

	enabled, ok := h.bindEnabled(c)
	if !ok {
		return
	}

	err := h.grantUseCase.SetCapability(c.Request.Context(), moderatorID, c.Param("capability"), enabled)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetSubOptionHandler records the boolean of a single sub-option.
// PUT /v1/moderators/:id/grant/capabilities/:capability/sub-options/:sub - Returns 204 No Content.
func (h *GrantHandler) SetSubOptionHandler(c *gin.Context) {
	moderatorID, ok := parseModeratorID(c, h.logger)
	if !ok {
		return
	}

	enabled, ok := h.bindEnabled(c)
	if !ok {
		return
	}

	err := h.grantUseCase.SetSubOption(
		c.Request.Context(),
		moderatorID,
		c.Param("capability"),
		c.Param("sub"),
		enabled,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GrantHandler) bindEnabled(c *gin.Context) (bool, bool) {
	var req dto.SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false, false
	}

	return *req.Enabled, true
}

// parseModeratorID reads the :id path parameter. Moderators are identified by UUIDs.
func parseModeratorID(c *gin.Context, logger *slog.Logger) (string, bool) {
	moderatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid moderator id format: must be a valid UUID"), logger)
		return "", false
	}
	return moderatorID.String(), true
}
