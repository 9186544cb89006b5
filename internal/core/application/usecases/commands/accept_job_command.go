package commands

import (
	"errors"

	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var ErrAcceptJobCommandIsNotConstructed = errors.New(
	"AcceptJobCommand must be created via NewAcceptJobCommand constructor",
)

// AcceptJobCommand represents a driver's request to claim a pending package.
//
// Example:
//
//	cmd, err := NewAcceptJobCommand(driver, packageID)
//	if err != nil {
//	    return err
//	}
//	pkg, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrAlreadyAssigned) {
//	    // another driver won the race, refresh the job list
//	}
type AcceptJobCommand struct {
	driver    actor.Actor
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptJobCommand creates a claim command for the given driver and package.
func NewAcceptJobCommand(driver actor.Actor, packageID kernel.UUID) (AcceptJobCommand, error) {
	if err := driver.Validate(); err != nil {
		return AcceptJobCommand{}, err
	}
	if err := packageID.Validate(); err != nil {
		return AcceptJobCommand{}, err
	}

	return AcceptJobCommand{
		driver:    driver,
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptJobCommand) Validate() error {
	return c.guard.Validate(ErrAcceptJobCommandIsNotConstructed)
}

// Driver returns the claiming driver.
func (c AcceptJobCommand) Driver() actor.Actor {
	return c.driver
}

// PackageID returns the package being claimed.
func (c AcceptJobCommand) PackageID() kernel.UUID {
	return c.packageID
}
