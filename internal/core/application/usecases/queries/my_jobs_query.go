package queries

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var (
	ErrMyJobsQueryIsNotConstructed = errors.New(
		"MyJobsQuery must be created via NewMyJobsQuery constructor",
	)
)

// MyJobsQuery lists the jobs a driver currently holds: claimed but not yet
// delivered, in claim order.
type MyJobsQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMyJobsQuery creates a query for a driver's active workload.
func NewMyJobsQuery(driverID kernel.UUID) (MyJobsQuery, error) {
	if err := driverID.Validate(); err != nil {
		return MyJobsQuery{}, err
	}

	return MyJobsQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q MyJobsQuery) Validate() error {
	return q.guard.Validate(ErrMyJobsQueryIsNotConstructed)
}

// DriverID returns the driver whose workload is queried.
func (q MyJobsQuery) DriverID() kernel.UUID {
	return q.driverID
}

// MyJobsQueryResponse describes one job the driver holds, including the
// recipient contact needed at the door.
type MyJobsQueryResponse struct {
	ID              kernel.UUID
	TrackingNumber  string
	Status          string
	RecipientName   string
	RecipientPhone  string
	PickupAddress   string
	DeliveryAddress string
	PackageType     string
	WeightKg        *float64
	ServiceType     string
	Price           float64
	AssignedAt      *time.Time
}
