package parcel

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
)

var (
	// ErrPackageIsNotConstructed is returned when a Package instance was not created
	// through NewPackage or RestorePackage. This ensures all packages are properly validated.
	ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage or RestorePackage")
)

// Package represents a delivery booking. It is the aggregate root that manages
// the package lifecycle from booking through driver assignment to delivery,
// and owns the audit events recorded for each transition.
//
// Package follows these invariants:
//   - Must have a valid unique identifier and a non-empty tracking number
//   - Exactly one of registered sender or guest email identifies the booker
//   - The price is a quote snapshot taken from the service type at booking time
//   - Status transitions follow the lifecycle state machine in Status
//   - driver fields (driverID, assignedAt) are set exactly once, on claim
//   - Can only be created through NewPackage or RestorePackage
//
// The Package struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Package struct {
	id             kernel.UUID
	trackingNumber string

	party    Party
	driverID *kernel.UUID

	recipient       Recipient
	pickupAddress   Address
	deliveryAddress Address
	pickupPoint     *kernel.GeoPoint
	deliveryPoint   *kernel.GeoPoint

	details     Details
	serviceType ServiceType
	price       float64

	status      Status
	createdAt   time.Time
	assignedAt  *time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewPackage creates a new booking with validation. This is the only way to
// create a Package for a fresh booking, ensuring all business invariants hold.
//
// The package starts in Pending status with no driver, a generated tracking
// number, and a price quoted from the service type's static table. Pickup and
// delivery coordinates start unset; geocoding fills them in best-effort later.
//
// Parameters:
//   - party: who booked (registered sender or guest)
//   - recipient: who receives the package
//   - pickup, delivery: validated postal addresses
//   - details: physical package description
//   - serviceType: the booked delivery service
//   - now: booking time, used for createdAt and the tracking number
//
// Returns:
//   - *Package: the created booking if all validations pass
//   - error: the first validation error encountered
//
// Example:
//
//	party, _ := parcel.NewRegisteredParty(userID)
//	recipient, _ := parcel.NewRecipient("Ada Lovelace", "07123456789")
//	pkg, err := parcel.NewPackage(party, recipient, pickup, delivery, details, parcel.SameDay, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewPackage(
	party Party,
	recipient Recipient,
	pickup, delivery Address,
	details Details,
	serviceType ServiceType,
	now time.Time,
) (*Package, error) {
	p := &Package{
		id:             kernel.NewUUID(),
		trackingNumber: NewTrackingNumber(now),
		status:         Pending,
		createdAt:      now,
		isConstructed:  true,
	}

	if err := p.setParty(party); err != nil {
		return nil, err
	}
	if err := p.setRecipient(recipient); err != nil {
		return nil, err
	}
	if err := p.setPickupAddress(pickup); err != nil {
		return nil, err
	}
	if err := p.setDeliveryAddress(delivery); err != nil {
		return nil, err
	}
	if err := p.setDetails(details); err != nil {
		return nil, err
	}
	if err := p.setServiceType(serviceType); err != nil {
		return nil, err
	}

	p.price = serviceType.Price()

	return p, nil
}

// RestorePackageParams carries the persisted state of a package for
// reconstruction. All value objects must already be constructed.
type RestorePackageParams struct {
	ID             kernel.UUID
	TrackingNumber string

	Party    Party
	DriverID *kernel.UUID

	Recipient       Recipient
	PickupAddress   Address
	DeliveryAddress Address
	PickupPoint     *kernel.GeoPoint
	DeliveryPoint   *kernel.GeoPoint

	Details     Details
	ServiceType ServiceType
	Price       float64

	Status      Status
	CreatedAt   time.Time
	AssignedAt  *time.Time
	DeliveredAt *time.Time
}

// RestorePackage reconstructs a Package from persistence, bypassing the
// booking-time defaults but still validating every component. Used by
// repositories when loading aggregates from the database.
func RestorePackage(params RestorePackageParams) (*Package, error) {
	if err := errors.Join(
		params.ID.Validate(),
		params.Party.Validate(),
		params.Recipient.Validate(),
		params.PickupAddress.Validate(),
		params.DeliveryAddress.Validate(),
		params.Details.Validate(),
		params.ServiceType.Validate(),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if params.TrackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("tracking number")
	}
	if params.DriverID != nil {
		if err := params.DriverID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Package{
		id:              params.ID,
		trackingNumber:  params.TrackingNumber,
		party:           params.Party,
		driverID:        params.DriverID,
		recipient:       params.Recipient,
		pickupAddress:   params.PickupAddress,
		deliveryAddress: params.DeliveryAddress,
		pickupPoint:     params.PickupPoint,
		deliveryPoint:   params.DeliveryPoint,
		details:         params.Details,
		serviceType:     params.ServiceType,
		price:           params.Price,
		status:          params.Status,
		createdAt:       params.CreatedAt,
		assignedAt:      params.AssignedAt,
		deliveredAt:     params.DeliveredAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Package instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}
	return nil
}

// IsEqual compares two packages by their unique identifiers.
func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the package's unique identifier.
func (p *Package) ID() kernel.UUID {
	return p.id
}

// TrackingNumber returns the public human-facing tracking number.
func (p *Package) TrackingNumber() string {
	return p.trackingNumber
}

// Party returns who booked the package.
func (p *Package) Party() Party {
	return p.party
}

// Driver returns the assigned driver's ID, or nil if unclaimed.
func (p *Package) Driver() *kernel.UUID {
	return p.driverID
}

// Recipient returns who receives the package.
func (p *Package) Recipient() Recipient {
	return p.recipient
}

// PickupAddress returns the collection address.
func (p *Package) PickupAddress() Address {
	return p.pickupAddress
}

// DeliveryAddress returns the destination address.
func (p *Package) DeliveryAddress() Address {
	return p.deliveryAddress
}

// PickupPoint returns the geocoded pickup coordinates, or nil if not resolved.
func (p *Package) PickupPoint() *kernel.GeoPoint {
	return p.pickupPoint
}

// DeliveryPoint returns the geocoded delivery coordinates, or nil if not resolved.
func (p *Package) DeliveryPoint() *kernel.GeoPoint {
	return p.deliveryPoint
}

// Details returns the physical package description.
func (p *Package) Details() Details {
	return p.details
}

// ServiceType returns the booked delivery service.
func (p *Package) ServiceType() ServiceType {
	return p.serviceType
}

// Price returns the price quoted at booking time.
func (p *Package) Price() float64 {
	return p.price
}

// Status returns the current lifecycle status.
func (p *Package) Status() Status {
	return p.status
}

// CreatedAt returns when the booking was created.
func (p *Package) CreatedAt() time.Time {
	return p.createdAt
}

// AssignedAt returns when a driver claimed the package, or nil.
func (p *Package) AssignedAt() *time.Time {
	return p.assignedAt
}

// DeliveredAt returns when the package was delivered, or nil.
func (p *Package) DeliveredAt() *time.Time {
	return p.deliveredAt
}

// IsParticipant reports whether the given user may see the package's
// conversation: the registered sender or the assigned driver.
func (p *Package) IsParticipant(userID kernel.UUID) bool {
	if p.party.IsOwnedBy(userID) {
		return true
	}
	return p.driverID != nil && p.driverID.IsEqual(userID)
}

// SetPickupPoint records the geocoded pickup coordinates.
func (p *Package) SetPickupPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	p.pickupPoint = &point
	return nil
}

// SetDeliveryPoint records the geocoded delivery coordinates.
func (p *Package) SetDeliveryPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	p.deliveryPoint = &point
	return nil
}

// Assign claims the package for a driver and moves it to Assigned.
//
// This method enforces the following business rules:
//   - The driver ID must be valid
//   - The package must still be Pending with no driver set
//
// Two drivers racing for the same package are separated at the store
// boundary by a conditional write; this method guards the in-memory
// aggregate with the same rules.
//
// Parameters:
//   - driverID: the claiming driver
//   - at: claim time, recorded as assignedAt
//
// Returns:
//   - nil on successful claim
//   - AlreadyAssignedError if a driver already holds the package
//   - InvalidTransitionError if the package is not Pending
func (p *Package) Assign(driverID kernel.UUID, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if p.driverID != nil {
		return errs.NewAlreadyAssignedError(p.id.String())
	}

	newStatus, err := p.status.Assign()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.driverID = &driverID
	p.assignedAt = &at
	return nil
}

// Advance moves the package one step along the delivery chain.
//
// This method enforces the following business rules:
//   - Only the assigned driver may advance status
//   - The target must be the immediate successor of the current status
//   - Reaching Delivered records deliveredAt
//
// Parameters:
//   - driverID: the acting driver, compared against the assignment
//   - to: the requested next status
//   - at: transition time, recorded as deliveredAt on the final step
//
// Returns:
//   - nil on success
//   - NotAuthorizedError if the actor is not the assigned driver
//   - InvalidTransitionError if the step is not allowed
func (p *Package) Advance(driverID kernel.UUID, to Status, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if p.driverID == nil || !p.driverID.IsEqual(driverID) {
		return errs.NewNotAuthorizedError("only the assigned driver can update delivery status")
	}

	newStatus, err := p.status.AdvanceTo(to)
	if err != nil {
		return err
	}

	p.status = newStatus
	if newStatus == Delivered {
		p.deliveredAt = &at
	}
	return nil
}

// Cancel withdraws the booking.
//
// This method enforces the following business rules:
//   - Only the registered sender may cancel
//   - The package must still be Pending (no driver has claimed it)
//
// Returns:
//   - nil on success
//   - NotAuthorizedError if the actor is not the sender
//   - InvalidTransitionError if the package already left Pending
func (p *Package) Cancel(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !p.party.IsOwnedBy(actorID) {
		return errs.NewNotAuthorizedError("only the sender can cancel a booking")
	}

	newStatus, err := p.status.Cancel()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// Amend updates the editable booking fields: recipient, delivery address,
// and package details. Allowed only for the sender while the package is
// still Pending and unclaimed. A changed delivery address drops the stale
// geocoded point so the backfill job re-resolves it.
//
// Returns:
//   - nil on success
//   - NotAuthorizedError if the actor is not the sender, or a driver
//     has already claimed the package
func (p *Package) Amend(actorID kernel.UUID, recipient Recipient, delivery Address, details Details) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !p.party.IsOwnedBy(actorID) {
		return errs.NewNotAuthorizedError("only the sender can edit a booking")
	}
	if p.status != Pending || p.driverID != nil {
		return errs.NewNotAuthorizedError("bookings are editable only while pending and unclaimed")
	}

	if err := recipient.Validate(); err != nil {
		return err
	}
	if err := delivery.Validate(); err != nil {
		return err
	}
	if err := details.Validate(); err != nil {
		return err
	}

	addressChanged := delivery.FullText() != p.deliveryAddress.FullText()

	p.recipient = recipient
	p.deliveryAddress = delivery
	p.details = details
	if addressChanged {
		p.deliveryPoint = nil
	}
	return nil
}

// setParty validates and sets the booking party.
// This is a private method used only during construction.
func (p *Package) setParty(party Party) error {
	if err := party.Validate(); err != nil {
		return err
	}
	p.party = party
	return nil
}

// setRecipient validates and sets the recipient.
// This is a private method used only during construction.
func (p *Package) setRecipient(recipient Recipient) error {
	if err := recipient.Validate(); err != nil {
		return err
	}
	p.recipient = recipient
	return nil
}

// setPickupAddress validates and sets the collection address.
// This is a private method used only during construction.
func (p *Package) setPickupAddress(pickup Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	p.pickupAddress = pickup
	return nil
}

// setDeliveryAddress validates and sets the destination address.
// This is a private method used only during construction.
func (p *Package) setDeliveryAddress(delivery Address) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	p.deliveryAddress = delivery
	return nil
}

// setDetails validates and sets the package details.
// This is a private method used only during construction.
func (p *Package) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	p.details = details
	return nil
}

// setServiceType validates and sets the booked service.
// This is a private method used only during construction.
func (p *Package) setServiceType(serviceType ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	p.serviceType = serviceType
	return nil
}
