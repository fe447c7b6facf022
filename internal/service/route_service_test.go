package service

import (
	"context"
	"errors"
	"testing"

	"georoute-api/internal/models"
	"georoute-api/internal/polyline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDirectionsProvider is a mock implementation of the DirectionsProvider interface
type MockDirectionsProvider struct {
	mock.Mock
}

func (m *MockDirectionsProvider) GetRoutes(ctx context.Context, from, to models.Coordinate) ([]models.Route, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]models.Route), args.Error(1)
}

var (
	routeFrom = models.Coordinate{Latitude: 10.0, Longitude: 76.0}
	routeTo   = models.Coordinate{Latitude: 10.1, Longitude: 76.1}
)

// collinearGeometry encodes a three-point straight line, so simplification
// must reduce it to its endpoints.
func collinearGeometry() string {
	return polyline.Encode([]models.Coordinate{
		{Latitude: 10.0, Longitude: 76.0},
		{Latitude: 10.05, Longitude: 76.05},
		{Latitude: 10.1, Longitude: 76.1},
	}, polyline.DefaultPrecision)
}

func TestRouteService_PlanRoute(t *testing.T) {
	mockDirections := new(MockDirectionsProvider)
	service := NewRouteService(mockDirections, 0)

	mockDirections.On("GetRoutes", mock.Anything, routeFrom, routeTo).Return([]models.Route{
		{Geometry: collinearGeometry(), DistanceMeters: 15000, DurationSeconds: 1200},
	}, nil)

	path, err := service.PlanRoute(context.Background(), routeFrom, routeTo, 0)
	require.NoError(t, err)
	require.NotNil(t, path)

	assert.Equal(t, 3, path.RawPointCount)
	require.Len(t, path.Points, 2)
	assert.InDelta(t, 10.0, path.Points[0].Latitude, 1e-5)
	assert.InDelta(t, 10.1, path.Points[1].Latitude, 1e-5)
	assert.Equal(t, float64(15000), path.DistanceMeters)
	assert.Equal(t, float64(1200), path.DurationSeconds)
	assert.Equal(t, polyline.Encode(path.Points, polyline.DefaultPrecision), path.Geometry)
	mockDirections.AssertExpectations(t)
}

func TestRouteService_PlanRoute_SkipsCorruptGeometry(t *testing.T) {
	mockDirections := new(MockDirectionsProvider)
	service := NewRouteService(mockDirections, 0)

	// First candidate carries an unterminated polyline; the second is used.
	mockDirections.On("GetRoutes", mock.Anything, routeFrom, routeTo).Return([]models.Route{
		{Geometry: "_p~iF~ps|U_", DistanceMeters: 1, DurationSeconds: 1},
		{Geometry: collinearGeometry(), DistanceMeters: 15000, DurationSeconds: 1200},
	}, nil)

	path, err := service.PlanRoute(context.Background(), routeFrom, routeTo, 0)
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Equal(t, float64(15000), path.DistanceMeters)
}

func TestRouteService_PlanRoute_NoUsableRoute(t *testing.T) {
	mockDirections := new(MockDirectionsProvider)
	service := NewRouteService(mockDirections, 0)

	mockDirections.On("GetRoutes", mock.Anything, routeFrom, routeTo).Return([]models.Route{
		{Geometry: "", DistanceMeters: 1, DurationSeconds: 1},
		{Geometry: "_", DistanceMeters: 1, DurationSeconds: 1},
	}, nil)

	path, err := service.PlanRoute(context.Background(), routeFrom, routeTo, 0)
	assert.NoError(t, err)
	assert.Nil(t, path)
}

func TestRouteService_PlanRoute_ProviderError(t *testing.T) {
	mockDirections := new(MockDirectionsProvider)
	service := NewRouteService(mockDirections, 0)

	mockDirections.On("GetRoutes", mock.Anything, routeFrom, routeTo).
		Return([]models.Route(nil), errors.New("gateway timeout"))

	path, err := service.PlanRoute(context.Background(), routeFrom, routeTo, 0)
	assert.Error(t, err)
	assert.Nil(t, path)
}

func TestRouteService_PlanRoute_InvalidCoordinates(t *testing.T) {
	mockDirections := new(MockDirectionsProvider)
	service := NewRouteService(mockDirections, 0)

	_, err := service.PlanRoute(context.Background(), models.Coordinate{Latitude: 91}, routeTo, 0)
	assert.Error(t, err)

	_, err = service.PlanRoute(context.Background(), routeFrom, models.Coordinate{Longitude: -181}, 0)
	assert.Error(t, err)

	mockDirections.AssertNotCalled(t, "GetRoutes")
}

func TestRouteService_SimplifyPath(t *testing.T) {
	service := NewRouteService(nil, 0)

	collinear := []models.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0.5, Longitude: 0.5},
		{Latitude: 1, Longitude: 1},
	}

	out := service.SimplifyPath(collinear, 0)
	require.Len(t, out, 2)
	assert.Equal(t, collinear[0], out[0])
	assert.Equal(t, collinear[2], out[1])

	// Tight explicit tolerance keeps a point that deviates beyond it.
	bent := []models.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0.01, Longitude: 0.5},
		{Latitude: 0, Longitude: 1},
	}
	assert.Len(t, service.SimplifyPath(bent, 0.0001), 3)
}
