// Package profile models per-user identity metadata: display name, contact
// info, and the driver-specific fields (licence, vehicle, availability).
// Profiles are keyed by the identity provider's user id.
package profile

import (
	"errors"
	"strings"
	"time"

	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
)

// ErrProfileIsNotConstructed is returned when a Profile instance was not
// created through a constructor.
var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile or RestoreProfile")

// Profile holds identity metadata for one user. The user id doubles as the
// profile id; there is at most one profile per user.
type Profile struct {
	userID   kernel.UUID
	fullName string
	phone    string
	role     actor.Role

	driverLicense string
	vehicleType   string
	available     bool

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewProfile creates a profile for a user. The full name is trimmed and
// must be 2 to 100 characters; phone is optional free text.
func NewProfile(userID kernel.UUID, fullName, phone string, role actor.Role, now time.Time) (*Profile, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}

	trimmedName := strings.TrimSpace(fullName)
	if len(trimmedName) < 2 || len(trimmedName) > 100 {
		return nil, errs.NewValueIsOutOfRangeError("full name", trimmedName, 2, 100)
	}

	return &Profile{
		userID:        userID,
		fullName:      trimmedName,
		phone:         strings.TrimSpace(phone),
		role:          role,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreProfileParams carries the persisted state of a profile.
type RestoreProfileParams struct {
	UserID        kernel.UUID
	FullName      string
	Phone         string
	Role          actor.Role
	DriverLicense string
	VehicleType   string
	Available     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestoreProfile reconstructs a Profile from persistence.
func RestoreProfile(params RestoreProfileParams) (*Profile, error) {
	if err := errors.Join(
		params.UserID.Validate(),
		params.Role.Validate(),
	); err != nil {
		return nil, err
	}

	return &Profile{
		userID:        params.UserID,
		fullName:      params.FullName,
		phone:         params.Phone,
		role:          params.Role,
		driverLicense: params.DriverLicense,
		vehicleType:   params.VehicleType,
		available:     params.Available,
		createdAt:     params.CreatedAt,
		updatedAt:     params.UpdatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Profile was created through a constructor.
func (p *Profile) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProfileIsNotConstructed
	}
	return nil
}

// UserID returns the owning user's id.
func (p *Profile) UserID() kernel.UUID {
	return p.userID
}

// FullName returns the user's display name.
func (p *Profile) FullName() string {
	return p.fullName
}

// Phone returns the user's contact number, possibly empty.
func (p *Profile) Phone() string {
	return p.phone
}

// Role returns the user's role.
func (p *Profile) Role() actor.Role {
	return p.role
}

// DriverLicense returns the driver's licence number, empty for customers.
func (p *Profile) DriverLicense() string {
	return p.driverLicense
}

// VehicleType returns the driver's vehicle description, empty for customers.
func (p *Profile) VehicleType() string {
	return p.vehicleType
}

// Available reports whether a driver is accepting jobs.
func (p *Profile) Available() bool {
	return p.available
}

// CreatedAt returns when the profile was created.
func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the profile last changed.
func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetContact updates the display name and phone.
func (p *Profile) SetContact(fullName, phone string, now time.Time) error {
	trimmedName := strings.TrimSpace(fullName)
	if len(trimmedName) < 2 || len(trimmedName) > 100 {
		return errs.NewValueIsOutOfRangeError("full name", trimmedName, 2, 100)
	}

	p.fullName = trimmedName
	p.phone = strings.TrimSpace(phone)
	p.updatedAt = now
	return nil
}

// SetVehicle records the driver's licence and vehicle. Only drivers carry
// vehicle details.
func (p *Profile) SetVehicle(driverLicense, vehicleType string, now time.Time) error {
	if p.role != actor.Driver {
		return errs.NewNotAuthorizedError("only driver profiles carry vehicle details")
	}

	p.driverLicense = strings.TrimSpace(driverLicense)
	p.vehicleType = strings.TrimSpace(vehicleType)
	p.updatedAt = now
	return nil
}

// SetAvailability toggles whether a driver is accepting jobs.
func (p *Profile) SetAvailability(available bool, now time.Time) error {
	if p.role != actor.Driver {
		return errs.NewNotAuthorizedError("only driver profiles have availability")
	}

	p.available = available
	p.updatedAt = now
	return nil
}
