package queries

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

// DefaultNearbyRadiusKm is the search radius applied when the caller does
// not supply one.
const DefaultNearbyRadiusKm = 50.0

var (
	ErrNearbyJobsQueryIsNotConstructed = errors.New(
		"NearbyJobsQuery must be created via NewNearbyJobsQuery constructor",
	)
)

// NearbyJobsQuery lists claimable jobs within a radius of the driver's
// position, closest first. Jobs whose pickup address has not been geocoded
// yet have no measurable distance and are excluded.
//
// Example:
//
//	query, err := queries.NewNearbyJobsQuery(51.5074, -0.1278, 25)
//	if err != nil {
//	    return err
//	}
//
//	jobs, err := handler.Handle(ctx, query)
//	for _, job := range jobs {
//	    fmt.Printf("%s is %.1f km away\n", job.TrackingNumber, job.DistanceKm)
//	}
type NearbyJobsQuery struct {
	origin kernel.GeoPoint
	maxKm  float64

	guard guard.ConstructorGuard
}

// NewNearbyJobsQuery creates a radius search around the driver's position.
// Coordinates must be valid WGS84 degrees. A zero or negative maxKm falls
// back to DefaultNearbyRadiusKm.
func NewNearbyJobsQuery(lat, lng, maxKm float64) (NearbyJobsQuery, error) {
	origin, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return NearbyJobsQuery{}, err
	}

	if maxKm <= 0 {
		maxKm = DefaultNearbyRadiusKm
	}

	return NearbyJobsQuery{
		origin: origin,
		maxKm:  maxKm,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q NearbyJobsQuery) Validate() error {
	return q.guard.Validate(ErrNearbyJobsQueryIsNotConstructed)
}

// Origin returns the driver's position.
func (q NearbyJobsQuery) Origin() kernel.GeoPoint {
	return q.origin
}

// MaxKm returns the search radius in kilometers.
func (q NearbyJobsQuery) MaxKm() float64 {
	return q.maxKm
}

// NearbyJobsQueryResponse describes one claimable job with its distance from
// the driver's position.
type NearbyJobsQueryResponse struct {
	AvailableJobsQueryResponse

	DistanceKm float64
}
