// internal/handlers/geo.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/zipstore/zip-storefront/internal/geo"
	"github.com/zipstore/zip-storefront/internal/utils"
)

// GeoHandler serves the province and district pickers on the checkout form.
type GeoHandler struct {
	dataset *geo.Dataset
}

func NewGeoHandler(dataset *geo.Dataset) *GeoHandler {
	return &GeoHandler{dataset: dataset}
}

// GET /geo/provinces
func (h *GeoHandler) ListProvinces(c *gin.Context) {
	utils.SuccessResponse(c, h.dataset.Provinces())
}

// GET /geo/provinces/:province/districts
func (h *GeoHandler) ListDistricts(c *gin.Context) {
	province := c.Param("province")
	if !h.dataset.HasProvince(province) {
		utils.NotFoundResponse(c, "province")
		return
	}
	utils.SuccessResponse(c, h.dataset.Districts(province))
}
