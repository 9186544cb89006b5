package queries

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var (
	ErrMyProfileQueryIsNotConstructed = errors.New(
		"MyProfileQuery must be created via NewMyProfileQuery constructor",
	)
)

// MyProfileQuery retrieves the acting user's own profile.
type MyProfileQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMyProfileQuery creates a profile lookup for the given user.
func NewMyProfileQuery(userID kernel.UUID) (MyProfileQuery, error) {
	if err := userID.Validate(); err != nil {
		return MyProfileQuery{}, err
	}

	return MyProfileQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q MyProfileQuery) Validate() error {
	return q.guard.Validate(ErrMyProfileQueryIsNotConstructed)
}

// UserID returns the profile owner.
func (q MyProfileQuery) UserID() kernel.UUID {
	return q.userID
}

// MyProfileQueryResponse describes the user's profile.
type MyProfileQueryResponse struct {
	UserID        kernel.UUID
	FullName      string
	Phone         string
	Role          string
	DriverLicense string
	VehicleType   string
	Available     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
