package ports

import (
	"context"

	"courier/internal/core/domain/model/kernel"
)

// Geocoder resolves a free-text postal address to coordinates.
//
// Geocoding is best-effort throughout the system: a (nil, nil) result means
// the address could not be resolved and is not an error. Callers leave the
// package's coordinates unset and carry on; the backfill job retries later.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*kernel.GeoPoint, error)
}
