package commands

import (
	"errors"

	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var ErrCancelBookingCommandIsNotConstructed = errors.New(
	"CancelBookingCommand must be created via NewCancelBookingCommand constructor",
)

// CancelBookingCommand represents the sender's request to withdraw a
// booking that no driver has claimed yet.
type CancelBookingCommand struct {
	sender    actor.Actor
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelBookingCommand creates a cancel command.
func NewCancelBookingCommand(sender actor.Actor, packageID kernel.UUID) (CancelBookingCommand, error) {
	if err := sender.Validate(); err != nil {
		return CancelBookingCommand{}, err
	}
	if err := packageID.Validate(); err != nil {
		return CancelBookingCommand{}, err
	}

	return CancelBookingCommand{
		sender:    sender,
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelBookingCommand) Validate() error {
	return c.guard.Validate(ErrCancelBookingCommandIsNotConstructed)
}

// Sender returns the acting sender.
func (c CancelBookingCommand) Sender() actor.Actor {
	return c.sender
}

// PackageID returns the package being cancelled.
func (c CancelBookingCommand) PackageID() kernel.UUID {
	return c.packageID
}
