package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	"github.com/allisson/vetdesk/internal/auth/http/dto"
	authUseCase "github.com/allisson/vetdesk/internal/auth/usecase"
	"github.com/allisson/vetdesk/internal/httputil"
	customValidation "github.com/allisson/vetdesk/internal/validation"
)

// ModeratorHandler handles HTTP requests for moderator management. All routes are root only.
type ModeratorHandler struct {
	moderatorUseCase authUseCase.ModeratorUseCase
	logger           *slog.Logger
}

// NewModeratorHandler creates a new moderator handler with required dependencies.
func NewModeratorHandler(moderatorUseCase authUseCase.ModeratorUseCase, logger *slog.Logger) *ModeratorHandler {
	return &ModeratorHandler{
		moderatorUseCase: moderatorUseCase,
		logger:           logger,
	}
}

// CreateHandler creates a moderator and returns its one-time secret.
// POST /v1/moderators - Returns 201 Created.
func (h *ModeratorHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateModeratorRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	output, err := h.moderatorUseCase.Create(c.Request.Context(), &authDomain.CreateModeratorInput{
		Name:   req.Name,
		IsRoot: req.IsRoot,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return the secret once; only its hash is stored
	c.JSON(http.StatusCreated, dto.CreateModeratorResponse{
		ID:     output.ID.String(),
		Secret: output.PlainSecret,
	})
}

// GetHandler returns a moderator by ID.
// GET /v1/moderators/:id
func (h *ModeratorHandler) GetHandler(c *gin.Context) {
	moderatorID, ok := h.parseID(c)
	if !ok {
		return
	}

	moderator, err := h.moderatorUseCase.Get(c.Request.Context(), moderatorID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapModeratorToResponse(moderator))
}

// ListHandler returns a page of moderators.
// GET /v1/moderators?offset=0&limit=50
func (h *ModeratorHandler) ListHandler(c *gin.Context) {
	// Parse pagination parameters
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Call use case
	moderators, err := h.moderatorUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapModeratorsToListResponse(moderators))
}

// DeactivateHandler disables a moderator.
// DELETE /v1/moderators/:id - Returns 204 No Content.
func (h *ModeratorHandler) DeactivateHandler(c *gin.Context) {
	moderatorID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.moderatorUseCase.Deactivate(c.Request.Context(), moderatorID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// UnlockHandler clears a moderator lockout.
// POST /v1/moderators/:id/unlock - Returns 204 No Content.
func (h *ModeratorHandler) UnlockHandler(c *gin.Context) {
	moderatorID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.moderatorUseCase.Unlock(c.Request.Context(), moderatorID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID reads the :id path parameter and writes a 422 response when it is not a UUID.
func (h *ModeratorHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	moderatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid moderator id format: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}
	return moderatorID, true
}
