package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/vetdesk/internal/auth/http"
	apperrors "github.com/allisson/vetdesk/internal/errors"
	"github.com/allisson/vetdesk/internal/httputil"
	"github.com/allisson/vetdesk/internal/permission/http/dto"
	permissionUseCase "github.com/allisson/vetdesk/internal/permission/usecase"
)

// PermissionHandler serves effective permission sets.
type PermissionHandler struct {
	resolverUseCase permissionUseCase.ResolverUseCase
	logger          *slog.Logger
}

// NewPermissionHandler creates a new permission handler with required dependencies.
func NewPermissionHandler(resolverUseCase permissionUseCase.ResolverUseCase, logger *slog.Logger) *PermissionHandler {
	return &PermissionHandler{
		resolverUseCase: resolverUseCase,
		logger:          logger,
	}
}

// MeHandler returns the effective permissions of the authenticated moderator.
// GET /v1/me/permissions
//
// The set reflects the stored grant only. Root moderators bypass capability checks
// regardless, which is reported through is_root.
func (h *PermissionHandler) MeHandler(c *gin.Context) {
	moderator, ok := authHTTP.GetModerator(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	set, err := h.resolverUseCase.Resolve(c.Request.Context(), moderator.ID.String())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEffectiveToResponse(set, moderator.IsRoot))
}

// ModeratorHandler returns the effective permissions of any moderator.
// GET /v1/moderators/:id/permissions - Root only.
func (h *PermissionHandler) ModeratorHandler(c *gin.Context) {
	moderatorID, ok := parseModeratorID(c, h.logger)
	if !ok {
		return
	}

	set, err := h.resolverUseCase.Resolve(c.Request.Context(), moderatorID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEffectiveToResponse(set, false))
}
