package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"georoute-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockGeoCodeService is a mock implementation of the GeoCodeService interface
type MockGeoCodeService struct {
	mock.Mock
}

func (m *MockGeoCodeService) Geocode(ctx context.Context, place string) (*models.ResolvedLocation, error) {
	args := m.Called(ctx, place)
	return args.Get(0).(*models.ResolvedLocation), args.Error(1)
}

func TestGeoCodeHandler_GeoCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var nilLocation *models.ResolvedLocation
	location := &models.ResolvedLocation{
		Coordinate: models.Coordinate{Latitude: 10.5276, Longitude: 76.2144},
		Address:    "Fort Kochi, Kerala 682001",
		PostalCode: "682001",
	}

	tests := []struct {
		name           string
		query          string
		mockLocation   *models.ResolvedLocation
		mockError      error
		expectedStatus int
	}{
		{
			name:           "missing query parameter",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "successful resolution",
			query:          "Fort Kochi",
			mockLocation:   location,
			mockError:      nil,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "place not found",
			query:          "Atlantis",
			mockLocation:   nilLocation,
			mockError:      nil,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "provider unreachable",
			query:          "Fort Kochi",
			mockLocation:   nilLocation,
			mockError:      errors.New("fetch failed"),
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockGeoCodeService)
			handler := NewGeoCodeHandler(mockSvc)

			if tt.query != "" {
				mockSvc.On("Geocode", mock.Anything, tt.query).Return(tt.mockLocation, tt.mockError)
			}

			// Create request
			req := httptest.NewRequest(http.MethodGet, "/geocode", nil)
			if tt.query != "" {
				q := req.URL.Query()
				q.Add("q", tt.query)
				req.URL.RawQuery = q.Encode()
			}
			w := httptest.NewRecorder()

			// Create Gin context
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			// Execute
			handler.GeoCode(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var body models.ResolvedLocation
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, *location, body)
			}

			if tt.query != "" {
				mockSvc.AssertExpectations(t)
			}
		})
	}
}
