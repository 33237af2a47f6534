// Package http provides HTTP handlers for supervision requests.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/vetdesk/internal/auth/http"
	apperrors "github.com/allisson/vetdesk/internal/errors"
	"github.com/allisson/vetdesk/internal/httputil"
	supervisionDomain "github.com/allisson/vetdesk/internal/supervision/domain"
	"github.com/allisson/vetdesk/internal/supervision/http/dto"
	supervisionUseCase "github.com/allisson/vetdesk/internal/supervision/usecase"
	customValidation "github.com/allisson/vetdesk/internal/validation"
)

// RequestHandler handles supervision request submission and decisions.
type RequestHandler struct {
	workflowUseCase supervisionUseCase.WorkflowUseCase
	logger          *slog.Logger
}

// NewRequestHandler creates a new supervision request handler with required dependencies.
func NewRequestHandler(workflowUseCase supervisionUseCase.WorkflowUseCase, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		workflowUseCase: workflowUseCase,
		logger:          logger,
	}
}

// SubmitHandler stores a new pending request. Public.
// POST /v1/supervision-requests - Returns 201 Created.
func (h *RequestHandler) SubmitHandler(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	request, err := h.workflowUseCase.Submit(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRequestToSubmitResponse(request))
}

// ListHandler returns requests oldest first.
// GET /v1/supervision-requests?status=pending&offset=0&limit=50
func (h *RequestHandler) ListHandler(c *gin.Context) {
	var status *supervisionDomain.Status
	if raw := c.Query("status"); raw != "" {
		parsed, err := supervisionDomain.ParseStatus(raw)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		status = &parsed
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	requests, err := h.workflowUseCase.List(c.Request.Context(), status, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRequestsToListResponse(requests))
}

// GetHandler returns a request.
// GET /v1/supervision-requests/:id
func (h *RequestHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseRequestID(c)
	if !ok {
		return
	}

	request, err := h.workflowUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRequestToResponse(request))
}

// ApproveHandler approves a pending request and assigns the applicant.
// POST /v1/supervision-requests/:id/approve - 409 not_pending or assignment_conflict.
func (h *RequestHandler) ApproveHandler(c *gin.Context) {
	h.decide(c, h.workflowUseCase.Approve)
}

// RejectHandler rejects a pending request.
// POST /v1/supervision-requests/:id/reject - 409 not_pending.
func (h *RequestHandler) RejectHandler(c *gin.Context) {
	h.decide(c, h.workflowUseCase.Reject)
}

type decideFunc func(ctx context.Context, id uuid.UUID, decidedBy string) (*supervisionDomain.Request, error)

func (h *RequestHandler) decide(c *gin.Context, decide decideFunc) {
	moderator, ok := authHTTP.GetModerator(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, ok := h.parseRequestID(c)
	if !ok {
		return
	}

	request, err := decide(c.Request.Context(), id, moderator.ID.String())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRequestToResponse(request))
}

func (h *RequestHandler) parseRequestID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid request id format: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}
