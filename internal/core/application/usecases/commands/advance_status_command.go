package commands

import (
	"errors"

	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/pkg/guard"
)

var ErrAdvanceStatusCommandIsNotConstructed = errors.New(
	"AdvanceStatusCommand must be created via NewAdvanceStatusCommand constructor",
)

// AdvanceStatusCommand represents the assigned driver's request to move a
// package one step along the delivery chain.
type AdvanceStatusCommand struct {
	driver    actor.Actor
	packageID kernel.UUID
	newStatus parcel.Status

	guard guard.ConstructorGuard
}

// NewAdvanceStatusCommand creates a status advance command. The target
// status is parsed from its wire representation here so handlers work
// with a validated Status value.
func NewAdvanceStatusCommand(driver actor.Actor, packageID kernel.UUID, newStatus string) (AdvanceStatusCommand, error) {
	if err := driver.Validate(); err != nil {
		return AdvanceStatusCommand{}, err
	}
	if err := packageID.Validate(); err != nil {
		return AdvanceStatusCommand{}, err
	}

	status, err := parcel.StatusFromString(newStatus)
	if err != nil {
		return AdvanceStatusCommand{}, err
	}

	return AdvanceStatusCommand{
		driver:    driver,
		packageID: packageID,
		newStatus: status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
}

// Driver returns the acting driver.
func (c AdvanceStatusCommand) Driver() actor.Actor {
	return c.driver
}

// PackageID returns the package being advanced.
func (c AdvanceStatusCommand) PackageID() kernel.UUID {
	return c.packageID
}

// NewStatus returns the requested target status.
func (c AdvanceStatusCommand) NewStatus() parcel.Status {
	return c.newStatus
}
