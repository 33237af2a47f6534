package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	"github.com/allisson/vetdesk/internal/assignment/http/dto"
	assignmentUseCase "github.com/allisson/vetdesk/internal/assignment/usecase"
	"github.com/allisson/vetdesk/internal/httputil"
)

// CandidateHandler lists the candidate pool for the assignment screens.
type CandidateHandler struct {
	candidateUseCase assignmentUseCase.CandidateUseCase
	logger           *slog.Logger
}

// NewCandidateHandler creates a new candidate handler with required dependencies.
func NewCandidateHandler(candidateUseCase assignmentUseCase.CandidateUseCase, logger *slog.Logger) *CandidateHandler {
	return &CandidateHandler{
		candidateUseCase: candidateUseCase,
		logger:           logger,
	}
}

// ListHandler returns active candidates of a role ordered by name.
// GET /v1/candidates?role=vet|supervisor&offset=0&limit=50
func (h *CandidateHandler) ListHandler(c *gin.Context) {
	role, err := assignmentDomain.ParseRole(c.Query("role"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	candidates, err := h.candidateUseCase.List(c.Request.Context(), role, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCandidatesToListResponse(candidates))
}
