package service

import (
	"context"
	"errors"
	"fmt"

	"georoute-api/internal/models"
	"georoute-api/internal/scraper"

	"github.com/rs/zerolog/log"
)

// GeoCodeService contains the core business logic for place resolution.
// It consults the resolution cache first and falls back to scraping the
// mapping provider; successful resolutions are written through. Cache
// failures are logged and ignored so the cache can never break resolution.
type GeoCodeService struct {
	resolver PlaceResolver
	cache    ResolutionCache
}

// PlaceResolver interface for dependency injection
type PlaceResolver interface {
	Resolve(ctx context.Context, place string) (*models.ResolvedLocation, error)
}

// ResolutionCache interface for dependency injection; a nil cache disables
// caching entirely.
type ResolutionCache interface {
	GetCachedPlace(ctx context.Context, place string) (*models.ResolvedLocation, error)
	PutCachedPlace(ctx context.Context, place string, loc models.ResolvedLocation) error
}

// NewGeoCodeService creates a new geo code service
func NewGeoCodeService(resolver PlaceResolver, cache ResolutionCache) *GeoCodeService {
	return &GeoCodeService{resolver: resolver, cache: cache}
}

// Geocode resolves a free-text place name to coordinates. It returns
// (nil, nil) when the place page was fetched but yielded no valid
// coordinates, and an error when the page could not be retrieved at all.
func (s *GeoCodeService) Geocode(ctx context.Context, place string) (*models.ResolvedLocation, error) {
	if place == "" {
		return nil, fmt.Errorf("service: place cannot be empty")
	}

	if s.cache != nil {
		cached, err := s.cache.GetCachedPlace(ctx, place)
		if err != nil {
			log.Warn().Err(err).Str("place", place).Msg("resolution cache lookup failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	loc, err := s.resolver.Resolve(ctx, place)
	if err != nil {
		if errors.Is(err, scraper.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("service: failed to resolve place: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.PutCachedPlace(ctx, place, *loc); err != nil {
			log.Warn().Err(err).Str("place", place).Msg("resolution cache write failed")
		}
	}

	return loc, nil
}
