package queries

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var (
	ErrRoutePlanQueryIsNotConstructed = errors.New(
		"RoutePlanQuery must be created via NewRoutePlanQuery constructor",
	)
)

// RoutePlanQuery builds a delivery run sheet for a driver's active jobs.
// Stops keep claim order; when the driver's position is supplied, each leg
// gets a distance estimate chained from the previous stop.
type RoutePlanQuery struct {
	driverID kernel.UUID
	origin   *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewRoutePlanQuery creates a run sheet query for the driver. The origin is
// optional; without it legs carry no distance estimates.
func NewRoutePlanQuery(driverID kernel.UUID, origin *kernel.GeoPoint) (RoutePlanQuery, error) {
	if err := driverID.Validate(); err != nil {
		return RoutePlanQuery{}, err
	}
	if origin != nil {
		if err := origin.Validate(); err != nil {
			return RoutePlanQuery{}, err
		}
	}

	return RoutePlanQuery{
		driverID: driverID,
		origin:   origin,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q RoutePlanQuery) Validate() error {
	return q.guard.Validate(ErrRoutePlanQueryIsNotConstructed)
}

// DriverID returns the driver whose run sheet is built.
func (q RoutePlanQuery) DriverID() kernel.UUID {
	return q.driverID
}

// Origin returns the driver's position, or nil when not supplied.
func (q RoutePlanQuery) Origin() *kernel.GeoPoint {
	return q.origin
}

// RoutePlanQueryResponse describes one stop on the driver's run sheet.
type RoutePlanQueryResponse struct {
	Sequence        int
	PackageID       kernel.UUID
	TrackingNumber  string
	Status          string
	PickupAddress   string
	DeliveryAddress string
	DistanceKm      *float64
}
