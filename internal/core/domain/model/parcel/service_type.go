package parcel

import (
	"fmt"

	"courier/internal/pkg/errs"
)

// ServiceType classifies the delivery service a sender books.
// Each service type carries a fixed price from a static table.
// The price is captured on the package at booking time as a quote
// snapshot and is never recomputed afterwards.
type ServiceType int

const (
	// UnknownService represents an invalid or undefined service type.
	UnknownService ServiceType = iota

	// SameDay delivers within the same working day.
	SameDay

	// Standard is the default multi-day delivery service.
	Standard

	// Bulk covers large consignments priced individually by quote.
	Bulk

	// International delivers outside the country.
	International

	// Fragile adds careful-handling guarantees.
	Fragile

	// Emergency is the fastest, highest-priority service.
	Emergency
)

func getServiceTypeStrings() map[ServiceType]string {
	return map[ServiceType]string{
		UnknownService: "unknown",
		SameDay:        "same_day",
		Standard:       "standard",
		Bulk:           "bulk",
		International:  "international",
		Fragile:        "fragile",
		Emergency:      "emergency",
	}
}

func getValidServiceTypeStrings() map[ServiceType]string {
	//nolint:exhaustive // UnknownService is intentionally excluded as it's invalid
	return map[ServiceType]string{
		SameDay:       "same_day",
		Standard:      "standard",
		Bulk:          "bulk",
		International: "international",
		Fragile:       "fragile",
		Emergency:     "emergency",
	}
}

// getServiceTypePrices returns the static quote table.
// Bulk is quoted at zero because bulk consignments are priced manually.
func getServiceTypePrices() map[ServiceType]float64 {
	//nolint:exhaustive // UnknownService has no price
	return map[ServiceType]float64{
		SameDay:       12.99,
		Standard:      4.99,
		Bulk:          0,
		International: 24.99,
		Fragile:       19.99,
		Emergency:     29.99,
	}
}

// ServiceTypeFromString parses a service type from its wire representation.
//
// Returns:
//   - the matching ServiceType for a known representation
//   - (UnknownService, error) if the string does not name a valid service type
func ServiceTypeFromString(s string) (ServiceType, error) {
	for st, str := range getValidServiceTypeStrings() {
		if str == s {
			return st, nil
		}
	}
	return UnknownService, errs.NewValueIsInvalidErrorWithCause(
		"service type", fmt.Errorf("%q is not a valid service type", s),
	)
}

// Validate checks if the ServiceType value is valid.
func (t ServiceType) Validate() error {
	if _, ok := getValidServiceTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("service type", fmt.Errorf("%d is not a valid service type", t))
	}
	return nil
}

// String returns the snake_case wire name of the service type.
// This method implements the fmt.Stringer interface.
func (t ServiceType) String() string {
	if str, ok := getServiceTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Price returns the quoted price for the service type from the static table.
// Returns 0 for invalid service types.
func (t ServiceType) Price() float64 {
	return getServiceTypePrices()[t]
}
