// Package actor provides the request-scoped identity that every lifecycle
// operation receives. The identity provider authenticates users out of
// process; this package only models the resulting actor (a stable identifier
// plus a role) so that no operation depends on ambient session state.
package actor

import (
	"errors"
	"fmt"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when using an improperly initialized Actor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role classifies what an authenticated user is allowed to do.
type Role int

const (
	// Unknown represents an invalid or undefined role.
	Unknown Role = iota

	// Customer books deliveries and manages their own packages.
	Customer

	// Driver accepts jobs and advances delivery status.
	Driver

	// Admin has unrestricted access.
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Unknown:  "unknown",
		Customer: "customer",
		Driver:   "driver",
		Admin:    "admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Role]string{
		Customer: "customer",
		Driver:   "driver",
		Admin:    "admin",
	}
}

// RoleFromString parses a role from its wire representation.
// Returns an error if the string does not name a known role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// Valid roles are: customer, driver, admin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase name of the role.
// This method implements the fmt.Stringer interface.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Actor is the authenticated party performing an operation.
// It is an immutable value object carrying a stable user identifier and a role.
//
// Example:
//
//	a, err := actor.NewActor(userID, actor.Driver)
//	if err != nil {
//	    return err
//	}
//	if !a.IsDriver() {
//	    return errs.NewNotAuthorizedError("driver role required")
//	}
type Actor struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates an Actor with a validated identifier and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Actor was created through the constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's stable user identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// IsCustomer reports whether the actor holds the customer role.
func (a Actor) IsCustomer() bool {
	return a.role == Customer
}

// IsDriver reports whether the actor holds the driver role.
func (a Actor) IsDriver() bool {
	return a.role == Driver
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.role == Admin
}
