package parcel

import (
	"fmt"
	"strings"

	"courier/internal/pkg/errs"
)

// Status represents the lifecycle state of a package.
// It implements a state machine with defined transitions to ensure
// packages follow the correct delivery workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	   │
//	   └──> Cancelled
//
// Delivered and Cancelled are terminal states. Cancellation is only
// reachable from Pending, before any driver has claimed the package.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a booking is first created.
	// Packages in this status are waiting for a driver to claim them.
	Pending

	// Assigned indicates a driver has claimed the package.
	Assigned

	// PickedUp indicates the assigned driver has collected the package.
	PickedUp

	// InTransit indicates the package is on its way to the recipient.
	InTransit

	// Delivered indicates the package reached the recipient.
	// This is a final state with no further transitions allowed.
	Delivered

	// Cancelled indicates the sender withdrew the booking before
	// a driver claimed it. This is a final state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses a status from its wire representation.
//
// Returns:
//   - the matching Status for a known representation
//   - (Unknown, error) if the string does not name a valid status
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Assigned, PickedUp, InTransit, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case wire name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// EventDescription returns the human-readable audit description written
// alongside a transition into this status. Assignment has a fixed phrase;
// all other statuses derive the description from the status name.
//
// Example:
//
//	parcel.Assigned.EventDescription()  // "Package assigned to driver"
//	parcel.InTransit.EventDescription() // "Package in transit"
func (s Status) EventDescription() string {
	if s == Assigned {
		return "Package assigned to driver"
	}
	return "Package " + strings.ReplaceAll(s.String(), "_", " ")
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned (driver claims the job)
//
// Any other origin fails: a package can only be claimed while it is
// still waiting for a driver.
//
// Returns:
//   - (Assigned, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
//
// This method is used by Package.Assign() to enforce state transitions.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError(
			s.String(), Assigned.String(), "only pending packages can be assigned",
		)
	}

	return Assigned, nil
}

// AdvanceTo transitions the status one step along the delivery chain.
//
// Valid transitions:
//   - Assigned -> PickedUp
//   - PickedUp -> InTransit
//   - InTransit -> Delivered
//
// Claiming (Pending -> Assigned) and cancellation are separate operations
// with their own preconditions and are never reachable through AdvanceTo.
//
// Returns:
//   - (to, nil) on valid transition
//   - (0, error) if to is not the immediate successor of the current status
//
// This method is used by Package.Advance() to enforce state transitions.
func (s Status) AdvanceTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return 0, err
	}

	next := map[Status]Status{
		Assigned:  PickedUp,
		PickedUp:  InTransit,
		InTransit: Delivered,
	}

	successor, ok := next[s]
	if !ok {
		return 0, errs.NewInvalidTransitionError(
			s.String(), to.String(), fmt.Sprintf("no status advance leaves %s", s.String()),
		)
	}
	if to != successor {
		return 0, errs.NewInvalidTransitionError(
			s.String(), to.String(), "status advances one step at a time",
		)
	}

	return to, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled (sender withdraws the booking)
//
// Once a driver has claimed the package the booking can no longer
// be cancelled.
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
//
// This method is used by Package.Cancel() to enforce state transitions.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError(
			s.String(), Cancelled.String(), "only pending packages can be cancelled",
		)
	}

	return Cancelled, nil
}
