package handler

import (
	"context"
	"net/http"

	"georoute-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GeoCodeHandler handles place resolution requests
type GeoCodeHandler struct {
	service GeoCodeService
}

// Service interface for dependency injection
type GeoCodeService interface {
	Geocode(context.Context, string) (*models.ResolvedLocation, error)
}

// NewGeoCodeHandler creates a new geocode handler
func NewGeoCodeHandler(svc GeoCodeService) *GeoCodeHandler {
	return &GeoCodeHandler{service: svc}
}

// GeoCode handles GET /geocode requests
func (h *GeoCodeHandler) GeoCode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	location, err := h.service.Geocode(c.Request.Context(), query)
	if err != nil {
		// The page could not be retrieved; the caller may want to retry.
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to reach mapping provider"})
		return
	}

	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no coordinates found for the given place"})
		return
	}

	c.JSON(http.StatusOK, location)
}
