package handler

import (
	"github.com/gin-gonic/gin"

	"copilot/internal/catalog"
)

// CatalogHandler serves the compliance standards and data templates.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// Standards handles GET /api/v1/standards
// @Summary List compliance standards
// @Tags catalog
// @Produce json
// @Success 200 {object} Response{data=[]domain.Standard}
// @Router /standards [get]
func (h *CatalogHandler) Standards(c *gin.Context) {
	RespondOK(c, h.catalog.Standards())
}

// Templates handles GET /api/v1/templates
// @Summary List synthetic-data templates
// @Tags catalog
// @Produce json
// @Success 200 {object} Response{data=[]domain.DataTemplate}
// @Router /templates [get]
func (h *CatalogHandler) Templates(c *gin.Context) {
	RespondOK(c, h.catalog.Templates())
}
