// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the geocoder, the tracking
// cache, and the chat notifier. These interfaces enable dependency inversion
// and testability.
package ports

import (
	"context"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
)

// PackageRepository defines the persistence contract for package aggregates
// and their audit events.
//
// All mutations of existing rows (Update, Claim, AdvanceStatus,
// CancelPending) are conditional writes: the precondition is re-checked
// inside the store's own update statement, not just on the previously loaded
// aggregate. This closes the window between read and write where a
// concurrent actor could have changed the row.
type PackageRepository interface {
	// Add persists a new package aggregate to storage.
	Add(ctx context.Context, aggregate *parcel.Package) error

	// Update persists the amendable fields of a package that is still
	// pending and unclaimed. Lifecycle columns are never written here;
	// transitions go through the conditional methods below.
	//
	// Returns:
	//   - AlreadyAssignedError if a driver's claim committed in between
	//   - InvalidTransitionError if the package left pending status
	//   - ObjectNotFoundError if the package does not exist
	Update(ctx context.Context, aggregate *parcel.Package) error

	// Get retrieves a package aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Package, error)

	// GetByTrackingNumber retrieves a package by its public tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Package, error)

	// GetAllPending retrieves all unclaimed pending packages,
	// newest first. Any driver may browse these.
	GetAllPending(ctx context.Context) ([]*parcel.Package, error)

	// GetActiveByDriver retrieves the driver's claimed packages that are
	// not yet delivered, ordered by claim time.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*parcel.Package, error)

	// GetAllBySender retrieves every package the sender ever booked,
	// newest first.
	GetAllBySender(ctx context.Context, senderID kernel.UUID) ([]*parcel.Package, error)

	// GetPendingMissingCoordinates retrieves pending packages whose pickup
	// or delivery coordinates are unresolved, for geocoding backfill.
	GetPendingMissingCoordinates(ctx context.Context, limit int) ([]*parcel.Package, error)

	// Claim atomically assigns the package to the driver. The write succeeds
	// only if the package is still pending with no driver at commit time.
	//
	// Returns:
	//   - AlreadyAssignedError if another driver's claim committed first
	//   - InvalidTransitionError if the package left pending status
	//   - ObjectNotFoundError if the package does not exist
	Claim(ctx context.Context, packageID, driverID kernel.UUID, at time.Time) error

	// AdvanceStatus atomically moves the package from one status to the
	// next. The write succeeds only if the package still holds the from
	// status at commit time, which makes repeated identical calls fail
	// instead of double-applying.
	//
	// Returns:
	//   - InvalidTransitionError if the package is no longer in from status
	//   - ObjectNotFoundError if the package does not exist
	AdvanceStatus(ctx context.Context, packageID kernel.UUID, from, to parcel.Status, at time.Time) error

	// CancelPending atomically cancels the package. The write succeeds only
	// if the package is still pending and unclaimed at commit time.
	//
	// Returns:
	//   - InvalidTransitionError if the package left pending or was claimed
	//   - ObjectNotFoundError if the package does not exist
	CancelPending(ctx context.Context, packageID kernel.UUID) error

	// AddEvent appends an audit event. Events are immutable once written.
	AddEvent(ctx context.Context, event *parcel.Event) error

	// GetEvents retrieves a package's audit trail ordered by creation time.
	GetEvents(ctx context.Context, packageID kernel.UUID) ([]*parcel.Event, error)
}
