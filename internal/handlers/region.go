// internal/handlers/region.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/plmining/licensing-backend/internal/services"
	"github.com/plmining/licensing-backend/internal/utils"
)

type RegionHandler struct {
	regionService *services.RegionService
}

func NewRegionHandler(regionService *services.RegionService) *RegionHandler {
	return &RegionHandler{regionService: regionService}
}

// GET /api/regions
func (h *RegionHandler) ListRegions(c *gin.Context) {
	regions, err := h.regionService.Regions(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, regions)
}

// GET /api/districts
func (h *RegionHandler) ListDistricts(c *gin.Context) {
	rows, err := h.regionService.DistrictRows(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}
