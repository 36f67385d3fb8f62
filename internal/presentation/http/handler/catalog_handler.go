package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-desk/internal/application/service"
	"github.com/sangkips/invoice-desk/internal/presentation/http/dto/response"
)

// CatalogHandler serves the item catalog and staff directory
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListItems handles listing catalog items
func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.catalogService.ListItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog retrieved successfully", items)
}

// ListStaff handles listing staff members
func (h *CatalogHandler) ListStaff(c *gin.Context) {
	staff, err := h.catalogService.ListStaff(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff retrieved successfully", staff)
}
