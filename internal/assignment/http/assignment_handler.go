// Package http provides HTTP handlers for farm assignments, the candidate pool and farms.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/vetdesk/internal/assignment/http/dto"
	assignmentUseCase "github.com/allisson/vetdesk/internal/assignment/usecase"
	"github.com/allisson/vetdesk/internal/httputil"
	customValidation "github.com/allisson/vetdesk/internal/validation"
)

// AssignmentHandler handles the vet and supervisor slots of a farm.
type AssignmentHandler struct {
	directoryUseCase assignmentUseCase.DirectoryUseCase
	matcherUseCase   assignmentUseCase.MatcherUseCase
	logger           *slog.Logger
}

// NewAssignmentHandler creates a new assignment handler with required dependencies.
func NewAssignmentHandler(
	directoryUseCase assignmentUseCase.DirectoryUseCase,
	matcherUseCase assignmentUseCase.MatcherUseCase,
	logger *slog.Logger,
) *AssignmentHandler {
	return &AssignmentHandler{
		directoryUseCase: directoryUseCase,
		matcherUseCase:   matcherUseCase,
		logger:           logger,
	}
}

// GetHandler returns both slots of a farm. Unknown farms have empty slots.
// GET /v1/farms/:farm_id/assignment
func (h *AssignmentHandler) GetHandler(c *gin.Context) {
	assignment, err := h.directoryUseCase.Get(c.Request.Context(), c.Param("farm_id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAssignmentToResponse(assignment))
}

// AssignVetHandler fills the vet slot.
// PUT /v1/farms/:farm_id/assignment/vet - Returns 204 No Content, 409 when the slot is taken.
func (h *AssignmentHandler) AssignVetHandler(c *gin.Context) {
	req, ok := h.bindAssignSlot(c)
	if !ok {
		return
	}

	err := h.matcherUseCase.AssignVet(c.Request.Context(), c.Param("farm_id"), req.CandidateID, req.Name, req.Phone)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// AssignSupervisorHandler fills the supervisor slot.
// PUT /v1/farms/:farm_id/assignment/supervisor - Returns 204 No Content, 409 when the slot is taken.
func (h *AssignmentHandler) AssignSupervisorHandler(c *gin.Context) {
	req, ok := h.bindAssignSlot(c)
	if !ok {
		return
	}

	err := h.matcherUseCase.AssignSupervisor(
		c.Request.Context(),
		c.Param("farm_id"),
		req.CandidateID,
		req.Name,
		req.Phone,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveVetHandler empties the vet slot.
// DELETE /v1/farms/:farm_id/assignment/vet - Returns 204 No Content.
func (h *AssignmentHandler) RemoveVetHandler(c *gin.Context) {
	if err := h.matcherUseCase.RemoveVet(c.Request.Context(), c.Param("farm_id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveSupervisorHandler empties the supervisor slot.
// DELETE /v1/farms/:farm_id/assignment/supervisor - Returns 204 No Content.
func (h *AssignmentHandler) RemoveSupervisorHandler(c *gin.Context) {
	if err := h.matcherUseCase.RemoveSupervisor(c.Request.Context(), c.Param("farm_id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AssignmentHandler) bindAssignSlot(c *gin.Context) (*dto.AssignSlotRequest, bool) {
	var req dto.AssignSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}

	req.Normalize()
	return &req, true
}
