package handler

import (
	"context"
	"net/http"
	"strconv"

	"georoute-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RouteHandler handles route geometry requests
type RouteHandler struct {
	service RouteService
}

// Service interface for dependency injection
type RouteService interface {
	PlanRoute(ctx context.Context, from, to models.Coordinate, tolerance float64) (*models.RoutePath, error)
	SimplifyPath(points []models.Coordinate, tolerance float64) []models.Coordinate
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(svc RouteService) *RouteHandler {
	return &RouteHandler{service: svc}
}

// Route handles GET /route requests
func (h *RouteHandler) Route(c *gin.Context) {
	from, ok := parseCoordinate(c, "from_lat", "from_lon")
	if !ok {
		return
	}
	to, ok := parseCoordinate(c, "to_lat", "to_lon")
	if !ok {
		return
	}

	tolerance := 0.0
	if tolStr := c.Query("tolerance"); tolStr != "" {
		tol, err := strconv.ParseFloat(tolStr, 64)
		if err != nil || tol < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tolerance format"})
			return
		}
		tolerance = tol
	}

	if !from.Valid() || !to.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}

	path, err := h.service.PlanRoute(c.Request.Context(), from, to, tolerance)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to reach routing provider"})
		return
	}

	if path == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no route found between the given coordinates"})
		return
	}

	c.JSON(http.StatusOK, path)
}

// SimplifyRequest is the body of POST /route/simplify
type SimplifyRequest struct {
	Points    []models.Coordinate `json:"points" binding:"required"`
	Tolerance float64             `json:"tolerance"`
}

// Simplify handles POST /route/simplify requests
func (h *RouteHandler) Simplify(c *gin.Context) {
	var req SimplifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Tolerance < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tolerance must be non-negative"})
		return
	}

	points := h.service.SimplifyPath(req.Points, req.Tolerance)
	c.JSON(http.StatusOK, gin.H{"points": points})
}

// parseCoordinate reads a lat/lon query pair, writing a 400 response and
// returning ok=false when either value is missing or malformed.
func parseCoordinate(c *gin.Context, latKey, lonKey string) (models.Coordinate, bool) {
	latStr := c.Query(latKey)
	lonStr := c.Query(lonKey)

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters '" + latKey + "' and '" + lonKey + "'"})
		return models.Coordinate{}, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return models.Coordinate{}, false
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return models.Coordinate{}, false
	}

	return models.Coordinate{Latitude: lat, Longitude: lon}, true
}
