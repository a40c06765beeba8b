// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/services"
	"github.com/plmining/licensing-backend/internal/utils"
)

// CatalogHandler serves the fixed reference data the application forms are
// built from.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// GET /api/license-types
func (h *CatalogHandler) LicenseTypes(c *gin.Context) {
	categories := make(map[string][]string)
	for _, t := range licensing.LicenseTypes() {
		categories[t] = licensing.Categories(t)
	}

	utils.SuccessResponse(c, gin.H{
		"license_types":       licensing.LicenseTypes(),
		"categories":          categories,
		"license_areas":       licensing.LicenseAreas(),
		"units":               licensing.Units(),
		"document_categories": services.DocumentCategories(),
	})
}

// GET /api/license-fees[?license_type=&license_category=]
//
// Without parameters the whole fee table is returned. With a type and
// category the selection is reconciled the way the application wizard does
// it, so an unknown pair comes back with an empty fee.
func (h *CatalogHandler) LicenseFees(c *gin.Context) {
	licenseType := c.Query("license_type")
	category := c.Query("license_category")

	if licenseType == "" && category == "" {
		utils.SuccessResponse(c, licensing.Catalog())
		return
	}

	utils.SuccessResponse(c, licensing.Reconcile(licensing.FeeSelection{
		LicenseType: licenseType,
		Category:    category,
	}))
}
