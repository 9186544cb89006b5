package parcel

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through a constructor.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event is an append-only audit entry recording one accepted status
// transition of a package. Events are immutable once written and are
// ordered by creation time.
type Event struct {
	id          kernel.UUID
	packageID   kernel.UUID
	eventType   Status
	description string
	createdAt   time.Time

	isConstructed bool
}

// NewEvent creates the audit entry for a transition into eventType.
// The description is derived from the status; assignment uses a fixed phrase.
func NewEvent(packageID kernel.UUID, eventType Status, at time.Time) (*Event, error) {
	if err := packageID.Validate(); err != nil {
		return nil, err
	}
	if err := eventType.Validate(); err != nil {
		return nil, err
	}

	return &Event{
		id:            kernel.NewUUID(),
		packageID:     packageID,
		eventType:     eventType,
		description:   eventType.EventDescription(),
		createdAt:     at,
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an Event from persistence without rewriting
// the stored description.
func RestoreEvent(id, packageID kernel.UUID, eventType Status, description string, createdAt time.Time) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		packageID.Validate(),
		eventType.Validate(),
	); err != nil {
		return nil, err
	}

	return &Event{
		id:            id,
		packageID:     packageID,
		eventType:     eventType,
		description:   description,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Event was created through a constructor.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// PackageID returns the id of the package the event belongs to.
func (e *Event) PackageID() kernel.UUID {
	return e.packageID
}

// Type returns the status the package transitioned into.
func (e *Event) Type() Status {
	return e.eventType
}

// Description returns the human-readable audit text.
func (e *Event) Description() string {
	return e.description
}

// CreatedAt returns when the transition was recorded.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}
