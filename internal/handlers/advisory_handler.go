package handlers

import (
	"net/http"

	"github.com/ArowuTest/gaspay-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AdvisoryHandler serves fuel tips and nearby stations
type AdvisoryHandler struct {
	advisoryService *services.AdvisoryService
}

// NewAdvisoryHandler creates a new AdvisoryHandler
func NewAdvisoryHandler(advisoryService *services.AdvisoryService) *AdvisoryHandler {
	return &AdvisoryHandler{advisoryService: advisoryService}
}

// Tips handles GET /tips
func (h *AdvisoryHandler) Tips(c *gin.Context) {
	_, msisdn := identity(c)
	tips, err := h.advisoryService.Tips(c.Request.Context(), msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tips)
}

// Stations handles GET /stations?lat=&lng=
func (h *AdvisoryHandler) Stations(c *gin.Context) {
	location := services.ResolveLocation(c.Query("lat"), c.Query("lng"))
	c.JSON(http.StatusOK, gin.H{
		"location": location,
		"stations": h.advisoryService.Stations(c.Request.Context(), location),
	})
}
