package service

import (
	"context"
	"fmt"

	"georoute-api/internal/models"
	"georoute-api/internal/polyline"
)

// RouteService contains the core business logic for route geometry: it
// requests candidate routes from the directions provider, decodes their
// encoded geometry and reduces the point count before returning.
type RouteService struct {
	directions DirectionsProvider
	tolerance  float64
}

// DirectionsProvider interface for dependency injection
type DirectionsProvider interface {
	GetRoutes(ctx context.Context, from, to models.Coordinate) ([]models.Route, error)
}

// NewRouteService creates a new route service. A non-positive tolerance
// falls back to the codec default.
func NewRouteService(directions DirectionsProvider, tolerance float64) *RouteService {
	if tolerance <= 0 {
		tolerance = polyline.DefaultTolerance
	}
	return &RouteService{directions: directions, tolerance: tolerance}
}

// PlanRoute returns the decoded and simplified geometry of the best usable
// candidate route. Candidates whose geometry decodes to nothing (blank or
// corrupt polyline) are skipped. It returns (nil, nil) when no candidate
// carried usable geometry.
func (s *RouteService) PlanRoute(ctx context.Context, from, to models.Coordinate, tolerance float64) (*models.RoutePath, error) {
	if !from.Valid() {
		return nil, fmt.Errorf("service: invalid origin coordinate: %f,%f", from.Latitude, from.Longitude)
	}
	if !to.Valid() {
		return nil, fmt.Errorf("service: invalid destination coordinate: %f,%f", to.Latitude, to.Longitude)
	}
	if tolerance <= 0 {
		tolerance = s.tolerance
	}

	routes, err := s.directions.GetRoutes(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch routes: %w", err)
	}

	for _, rt := range routes {
		points := polyline.Decode(rt.Geometry, polyline.DefaultPrecision)
		if len(points) == 0 {
			continue
		}
		simplified := polyline.Simplify(points, tolerance)
		return &models.RoutePath{
			Points:          simplified,
			Geometry:        polyline.Encode(simplified, polyline.DefaultPrecision),
			DistanceMeters:  rt.DistanceMeters,
			DurationSeconds: rt.DurationSeconds,
			RawPointCount:   len(points),
		}, nil
	}

	return nil, nil
}

// SimplifyPath reduces the point count of an arbitrary caller-supplied path.
func (s *RouteService) SimplifyPath(points []models.Coordinate, tolerance float64) []models.Coordinate {
	if tolerance <= 0 {
		tolerance = s.tolerance
	}
	return polyline.Simplify(points, tolerance)
}
