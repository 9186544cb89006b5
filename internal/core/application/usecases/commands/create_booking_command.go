package commands

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var (
	ErrCreateBookingCommandIsNotConstructed = errors.New(
		"CreateBookingCommand must be created via NewCreateBookingCommand constructor",
	)
)

// CreateBookingParams carries the raw booking fields as submitted by the
// caller. Field-level validation happens when the handler builds the domain
// value objects; the command only checks structural rules.
type CreateBookingParams struct {
	SenderID   *kernel.UUID
	GuestEmail string

	RecipientName  string
	RecipientPhone string

	PickupStreet   string
	PickupCity     string
	PickupPostcode string

	DeliveryStreet   string
	DeliveryCity     string
	DeliveryPostcode string

	PackageType   string
	WeightKg      *float64
	DeclaredValue *float64
	Dimensions    string
	Notes         string

	ServiceType string
}

// CreateBookingCommand represents a request to book a new delivery.
// Exactly one of SenderID or GuestEmail identifies the booker.
//
// Example:
//
//	cmd, err := NewCreateBookingCommand(CreateBookingParams{
//	    SenderID:       &senderID,
//	    RecipientName:  "Ada Lovelace",
//	    RecipientPhone: "07123456789",
//	    ...
//	    ServiceType:    "same_day",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid booking data: %w", err)
//	}
//	pkg, err := handler.Handle(ctx, cmd)
type CreateBookingCommand struct {
	params CreateBookingParams

	guard guard.ConstructorGuard
}

// NewCreateBookingCommand creates a booking command. It enforces that the
// booker is identified exactly one way: an authenticated sender id or a
// guest contact email, never both and never neither.
func NewCreateBookingCommand(params CreateBookingParams) (CreateBookingCommand, error) {
	if params.SenderID == nil && params.GuestEmail == "" {
		return CreateBookingCommand{}, errs.NewValueIsRequiredError("sender or guest email")
	}
	if params.SenderID != nil && params.GuestEmail != "" {
		return CreateBookingCommand{}, errs.NewValueIsInvalidError("booking cannot have both sender and guest email")
	}
	if params.SenderID != nil {
		if err := params.SenderID.Validate(); err != nil {
			return CreateBookingCommand{}, err
		}
	}
	if params.ServiceType == "" {
		return CreateBookingCommand{}, errs.NewValueIsRequiredError("service type")
	}

	return CreateBookingCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBookingCommand) Validate() error {
	return c.guard.Validate(ErrCreateBookingCommandIsNotConstructed)
}

// Params returns the raw booking fields.
func (c CreateBookingCommand) Params() CreateBookingParams {
	return c.params
}
