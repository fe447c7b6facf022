package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"georoute-api/internal/models"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the mapping provider the resolver scrapes. The pages
	// are undocumented and adversarial; extraction is strictly best-effort.
	DefaultBaseURL = "https://www.google.com"

	// DefaultTimeout bounds both connecting and reading the place page.
	DefaultTimeout = 10 * time.Second

	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9"
)

// ErrNotFound is returned when the place page was fetched but no extraction
// stage produced a range-valid coordinate pair.
var ErrNotFound = errors.New("scraper: no valid coordinates found")

// Resolver maps a free-text place description to a best-guess coordinate by
// scraping the mapping provider's place page. It is stateless and safe for
// concurrent use; each call performs exactly one outbound GET with no retry.
type Resolver struct {
	client  *http.Client
	baseURL string
}

// New creates a Resolver against the given base URL. An empty base URL or a
// non-positive timeout fall back to the defaults.
func New(baseURL string, timeout time.Duration) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Resolve fetches the place page for the given free-text place name and
// extracts a coordinate pair using the ordered extraction cascade. It returns
// ErrNotFound when the page yielded no range-valid pair, and a wrapped fetch
// error when the page could not be retrieved. Errors never escape as panics.
func (r *Resolver) Resolve(ctx context.Context, place string) (*models.ResolvedLocation, error) {
	if strings.TrimSpace(place) == "" {
		return nil, errors.New("scraper: place must be non-empty")
	}

	body, err := r.fetch(ctx, place)
	if err != nil {
		return nil, fmt.Errorf("scraper: fetch place page: %w", err)
	}

	rawLat, rawLng, ok := extractCoordinates(body)
	if !ok {
		return nil, ErrNotFound
	}

	lat, latErr := strconv.ParseFloat(rawLat, 64)
	lng, lngErr := strconv.ParseFloat(rawLng, 64)
	if latErr != nil || lngErr != nil {
		return nil, ErrNotFound
	}

	coord := models.Coordinate{Latitude: lat, Longitude: lng}
	if !coord.Valid() {
		return nil, ErrNotFound
	}

	// Label extraction is best-effort and informational only; it must never
	// turn a successful resolution into a failure.
	label := extractLabel(body, place)
	loc := &models.ResolvedLocation{
		Coordinate: coord,
		Address:    label,
		PostalCode: extractPostalCode(label),
	}

	log.Debug().
		Str("place", place).
		Float64("lat", lat).
		Float64("lng", lng).
		Msg("scraper: resolved place")

	return loc, nil
}

// fetch performs the single outbound GET and buffers the whole body. The
// request spoofs a desktop browser and prefers English responses so the page
// layout stays as predictable as an undocumented source allows.
func (r *Resolver) fetch(ctx context.Context, place string) (string, error) {
	endpoint := r.baseURL + "/maps/place/" + url.PathEscape(place)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}
