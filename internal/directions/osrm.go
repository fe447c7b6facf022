package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"georoute-api/internal/models"
)

const (
	// DefaultBaseURL is the public OSRM demo server.
	DefaultBaseURL = "https://router.project-osrm.org"

	// DefaultProfile is the routing profile used when none is configured.
	DefaultProfile = "driving"

	defaultTimeout = 10 * time.Second
)

// Client requests candidate routes from an OSRM-compatible routing service.
// Route geometry is returned as an encoded polyline and passed through
// untouched; decoding is the codec's concern.
type Client struct {
	httpClient *http.Client
	baseURL    string
	profile    string
}

// New creates a directions client. Empty arguments fall back to the defaults.
func New(baseURL, profile string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if profile == "" {
		profile = DefaultProfile
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		profile:    profile,
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// GetRoutes returns the candidate routes between two coordinates, best first.
func (c *Client) GetRoutes(ctx context.Context, from, to models.Coordinate) ([]models.Route, error) {
	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s,%s;%s,%s",
		c.baseURL,
		c.profile,
		formatCoord(from.Longitude), formatCoord(from.Latitude),
		formatCoord(to.Longitude), formatCoord(to.Latitude),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("directions: create request: %w", err)
	}

	q := url.Values{}
	q.Set("overview", "full")
	q.Set("geometries", "polyline")
	q.Set("alternatives", "true")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions: unexpected status: %d", resp.StatusCode)
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("directions: decode response: %w", err)
	}

	if decoded.Code != "Ok" {
		return nil, fmt.Errorf("directions: routing failed with code %q", decoded.Code)
	}

	routes := make([]models.Route, 0, len(decoded.Routes))
	for _, rt := range decoded.Routes {
		routes = append(routes, models.Route{
			Geometry:        rt.Geometry,
			DistanceMeters:  rt.Distance,
			DurationSeconds: rt.Duration,
		})
	}

	return routes, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
