// Package http provides the HTTP handlers for the capability catalog, moderator grants
// and effective permissions.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
	"github.com/allisson/vetdesk/internal/permission/http/dto"
)

// CatalogHandler serves the capability catalog.
type CatalogHandler struct {
	catalog *permissionDomain.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog *permissionDomain.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// GetHandler returns the catalog in catalog order.
// GET /v1/catalog
func (h *CatalogHandler) GetHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapCatalogToResponse(h.catalog))
}
