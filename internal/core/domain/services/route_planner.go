package services

import (
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
)

// RouteStop is one delivery on a driver's planned route, annotated with its
// position in the sequence and the leg distance from the previous stop.
// DistanceKm is nil when either end of the leg has no resolved coordinates.
type RouteStop struct {
	Package    *parcel.Package
	Sequence   int
	DistanceKm *float64
}

// RoutePlanner is a domain service that turns a driver's active jobs into an
// ordered stop list for presentation.
//
// The ordering is deliberately naive: stops keep the order the jobs were
// accepted in. No travelling-salesman optimization is attempted; the planner
// only annotates each leg with its great-circle distance so the driver can
// judge the route. Jobs without delivery coordinates stay in sequence but
// carry no distance.
type RoutePlanner struct{}

// NewRoutePlanner creates a new RoutePlanner instance.
func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// Plan builds the stop list for the given jobs, preserving their order.
//
// Parameters:
//   - jobs: the driver's active packages, already sorted by acceptance time
//   - origin: the driver's current position, or nil if unknown
//
// Returns:
//   - one RouteStop per job, sequence numbers starting at 1
//   - error: validation error if any package was not properly constructed
//
// Leg distances chain: origin to the first stop, then stop to stop. A leg
// touching a package with unresolved delivery coordinates has a nil distance,
// and the next resolvable leg measures from the last known point.
func (p RoutePlanner) Plan(jobs []*parcel.Package, origin *kernel.GeoPoint) ([]RouteStop, error) {
	stops := make([]RouteStop, 0, len(jobs))
	previous := origin

	for i, job := range jobs {
		if err := job.Validate(); err != nil {
			return nil, err
		}

		stop := RouteStop{
			Package:  job,
			Sequence: i + 1,
		}

		point := job.DeliveryPoint()
		if point != nil && previous != nil {
			km, err := previous.DistanceKm(*point)
			if err != nil {
				return nil, err
			}
			stop.DistanceKm = &km
		}
		if point != nil {
			previous = point
		}

		stops = append(stops, stop)
	}

	return stops, nil
}
