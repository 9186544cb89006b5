package queries

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var (
	ErrAvailableJobsQueryIsNotConstructed = errors.New(
		"AvailableJobsQuery must be created via NewAvailableJobsQuery constructor",
	)
)

// AvailableJobsQuery lists unclaimed pending bookings for drivers browsing
// the job board. Newest bookings come first.
type AvailableJobsQuery struct {
	guard guard.ConstructorGuard
}

// NewAvailableJobsQuery creates a query for the open job board.
// This is a parameterless query that fetches all pending unclaimed bookings.
func NewAvailableJobsQuery() AvailableJobsQuery {
	return AvailableJobsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q AvailableJobsQuery) Validate() error {
	return q.guard.Validate(ErrAvailableJobsQueryIsNotConstructed)
}

// AvailableJobsQueryResponse describes one claimable job. Drivers see full
// pickup and delivery addresses so they can judge the run before accepting.
type AvailableJobsQueryResponse struct {
	ID              kernel.UUID
	TrackingNumber  string
	PickupAddress   string
	DeliveryAddress string
	PickupPoint     *kernel.GeoPoint
	PackageType     string
	WeightKg        *float64
	ServiceType     string
	Price           float64
	CreatedAt       time.Time
}
