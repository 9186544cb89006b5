package queries

import (
	"errors"
	"strings"

	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var (
	ErrTrackPackageQueryIsNotConstructed = errors.New(
		"TrackPackageQuery must be created via NewTrackPackageQuery constructor",
	)
)

// TrackPackageQuery looks up the public delivery snapshot for a tracking
// number. The lookup is unauthenticated; anyone holding the tracking number
// may check progress, so the response never includes street addresses or
// contact details.
//
// Example:
//
//	query, err := queries.NewTrackPackageQuery("PKG-1735689600-a1b2c3d4")
//	if err != nil {
//	    return err
//	}
//
//	snapshot, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s is %s\n", snapshot.TrackingNumber, snapshot.Status)
type TrackPackageQuery struct {
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewTrackPackageQuery creates a tracking lookup for the given number.
// The number is trimmed and must be non-empty.
func NewTrackPackageQuery(trackingNumber string) (TrackPackageQuery, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return TrackPackageQuery{}, errs.NewValueIsRequiredError("tracking number")
	}

	return TrackPackageQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackPackageQuery) Validate() error {
	return q.guard.Validate(ErrTrackPackageQueryIsNotConstructed)
}

// TrackingNumber returns the number being looked up.
func (q TrackPackageQuery) TrackingNumber() string {
	return q.trackingNumber
}
