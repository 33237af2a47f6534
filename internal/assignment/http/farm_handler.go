package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/vetdesk/internal/assignment/http/dto"
	assignmentUseCase "github.com/allisson/vetdesk/internal/assignment/usecase"
	"github.com/allisson/vetdesk/internal/httputil"
)

// FarmHandler exposes the farm store read side.
type FarmHandler struct {
	farmUseCase assignmentUseCase.FarmUseCase
	logger      *slog.Logger
}

// NewFarmHandler creates a new farm handler with required dependencies.
func NewFarmHandler(farmUseCase assignmentUseCase.FarmUseCase, logger *slog.Logger) *FarmHandler {
	return &FarmHandler{
		farmUseCase: farmUseCase,
		logger:      logger,
	}
}

// GetHandler returns a farm.
// GET /v1/farms/:farm_id
func (h *FarmHandler) GetHandler(c *gin.Context) {
	farm, err := h.farmUseCase.Get(c.Request.Context(), c.Param("farm_id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFarmToResponse(farm))
}

// ListHandler returns farms, newest first.
// GET /v1/farms?offset=0&limit=50
func (h *FarmHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	farms, err := h.farmUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFarmsToListResponse(farms))
}
