package commands

import (
	"errors"

	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var ErrEditBookingCommandIsNotConstructed = errors.New(
	"EditBookingCommand must be created via NewEditBookingCommand constructor",
)

// EditBookingParams carries the editable booking fields: recipient contact,
// delivery address, and package details. Field-level validation happens when
// the handler builds the domain value objects.
type EditBookingParams struct {
	RecipientName  string
	RecipientPhone string

	DeliveryStreet   string
	DeliveryCity     string
	DeliveryPostcode string

	PackageType   string
	WeightKg      *float64
	DeclaredValue *float64
	Dimensions    string
	Notes         string
}

// EditBookingCommand represents the sender's request to amend a booking
// that is still pending and unclaimed.
type EditBookingCommand struct {
	sender    actor.Actor
	packageID kernel.UUID
	params    EditBookingParams

	guard guard.ConstructorGuard
}

// NewEditBookingCommand creates an edit command.
func NewEditBookingCommand(sender actor.Actor, packageID kernel.UUID, params EditBookingParams) (EditBookingCommand, error) {
	if err := sender.Validate(); err != nil {
		return EditBookingCommand{}, err
	}
	if err := packageID.Validate(); err != nil {
		return EditBookingCommand{}, err
	}

	return EditBookingCommand{
		sender:    sender,
		packageID: packageID,
		params:    params,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EditBookingCommand) Validate() error {
	return c.guard.Validate(ErrEditBookingCommandIsNotConstructed)
}

// Sender returns the acting sender.
func (c EditBookingCommand) Sender() actor.Actor {
	return c.sender
}

// PackageID returns the package being edited.
func (c EditBookingCommand) PackageID() kernel.UUID {
	return c.packageID
}

// Params returns the new field values.
func (c EditBookingCommand) Params() EditBookingParams {
	return c.params
}
