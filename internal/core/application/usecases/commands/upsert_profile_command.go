package commands

import (
	"errors"

	"courier/internal/core/domain/model/actor"
	"courier/internal/pkg/guard"
)

var ErrUpsertProfileCommandIsNotConstructed = errors.New(
	"UpsertProfileCommand must be created via NewUpsertProfileCommand constructor",
)

// UpsertProfileParams carries the editable profile fields. Vehicle details
// and availability only apply to driver profiles; the domain rejects them
// for anyone else.
type UpsertProfileParams struct {
	FullName string
	Phone    string

	DriverLicense string
	VehicleType   string
	Available     *bool
}

// UpsertProfileCommand represents a user creating or updating their own
// profile. The profile is keyed by the acting user's id; nobody can write
// another user's profile.
type UpsertProfileCommand struct {
	user   actor.Actor
	params UpsertProfileParams

	guard guard.ConstructorGuard
}

// NewUpsertProfileCommand creates a profile upsert command.
func NewUpsertProfileCommand(user actor.Actor, params UpsertProfileParams) (UpsertProfileCommand, error) {
	if err := user.Validate(); err != nil {
		return UpsertProfileCommand{}, err
	}

	return UpsertProfileCommand{
		user:   user,
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpsertProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpsertProfileCommandIsNotConstructed)
}

// User returns the profile owner.
func (c UpsertProfileCommand) User() actor.Actor {
	return c.user
}

// Params returns the submitted profile fields.
func (c UpsertProfileCommand) Params() UpsertProfileParams {
	return c.params
}
