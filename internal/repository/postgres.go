package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"georoute-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the resolution cache on PostgreSQL. The cache is
// external to the resolver core: the service layer consults it before
// scraping and writes through after a successful resolution.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// NormalizePlace collapses whitespace and case so lookups and writes agree
// on a cache key. The importer uses the same normalization when seeding.
func NormalizePlace(place string) string {
	return strings.ToLower(strings.Join(strings.Fields(place), " "))
}

// GetCachedPlace returns the cached resolution for a place name, or nil when
// the place has not been resolved before.
func (r *Repository) GetCachedPlace(ctx context.Context, place string) (*models.ResolvedLocation, error) {
	sql := `
		SELECT latitude, longitude, address, postal_code
		FROM resolution_cache
		WHERE place = $1
	`

	var loc models.ResolvedLocation
	err := r.db.QueryRow(ctx, sql, NormalizePlace(place)).Scan(
		&loc.Latitude,
		&loc.Longitude,
		&loc.Address,
		&loc.PostalCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to query resolution cache: %w", err)
	}

	return &loc, nil
}

// PutCachedPlace stores a resolution, replacing any previous entry for the
// same place.
func (r *Repository) PutCachedPlace(ctx context.Context, place string, loc models.ResolvedLocation) error {
	sql := `
		INSERT INTO resolution_cache (place, latitude, longitude, address, postal_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (place) DO UPDATE
		SET latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			address = EXCLUDED.address,
			postal_code = EXCLUDED.postal_code
	`

	key := NormalizePlace(place)
	if key == "" {
		return errors.New("repository: empty place key")
	}

	_, err := r.db.Exec(ctx, sql, key, loc.Latitude, loc.Longitude, loc.Address, loc.PostalCode)
	if err != nil {
		return fmt.Errorf("repository: failed to upsert resolution cache: %w", err)
	}

	return nil
}
