package queries

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var (
	ErrMyBookingsQueryIsNotConstructed = errors.New(
		"MyBookingsQuery must be created via NewMyBookingsQuery constructor",
	)
)

// MyBookingsQuery lists every booking a registered sender has made,
// newest first, across all lifecycle states.
type MyBookingsQuery struct {
	senderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMyBookingsQuery creates a query for a sender's booking history.
func NewMyBookingsQuery(senderID kernel.UUID) (MyBookingsQuery, error) {
	if err := senderID.Validate(); err != nil {
		return MyBookingsQuery{}, err
	}

	return MyBookingsQuery{
		senderID: senderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q MyBookingsQuery) Validate() error {
	return q.guard.Validate(ErrMyBookingsQueryIsNotConstructed)
}

// SenderID returns the sender whose bookings are queried.
func (q MyBookingsQuery) SenderID() kernel.UUID {
	return q.senderID
}

// MyBookingsQueryResponse describes one booking from the sender's
// perspective, including delivery progress timestamps.
type MyBookingsQueryResponse struct {
	ID              kernel.UUID
	TrackingNumber  string
	Status          string
	RecipientName   string
	PickupAddress   string
	DeliveryAddress string
	PackageType     string
	ServiceType     string
	Price           float64
	DriverID        *kernel.UUID
	CreatedAt       time.Time
	AssignedAt      *time.Time
	DeliveredAt     *time.Time
}
