package commands

import (
	"context"
	"log/slog"
	"time"

	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/ports"
)

// CreateBookingCommandHandler handles the business logic for booking creation.
// It validates every field through the domain value objects, quotes the price
// from the service-type table, geocodes both addresses best-effort, and
// persists the package in pending status with a fresh tracking number.
type CreateBookingCommandHandler struct {
	uowFactory PackageUoWFactory
	geocoder   ports.Geocoder
	logger     *slog.Logger
}

// NewCreateBookingCommandHandler creates a handler for booking creation.
func NewCreateBookingCommandHandler(
	uowFactory PackageUoWFactory,
	geocoder ports.Geocoder,
	logger *slog.Logger,
) CreateBookingCommandHandler {
	return CreateBookingCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		logger:     logger.With("component", "create_booking"),
	}
}

// Handle processes the booking command and returns the created package.
//
// Geocoding failures never block creation: an unresolvable address simply
// leaves the coordinates unset and the backfill job retries later. Every
// other validation failure is returned as-is, first violation only.
func (h *CreateBookingCommandHandler) Handle(ctx context.Context, cmd CreateBookingCommand) (*parcel.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	params := cmd.Params()

	var (
		party parcel.Party
		err   error
	)
	if params.SenderID != nil {
		party, err = parcel.NewRegisteredParty(*params.SenderID)
	} else {
		party, err = parcel.NewGuestParty(params.GuestEmail)
	}
	if err != nil {
		return nil, err
	}

	recipient, err := parcel.NewRecipient(params.RecipientName, params.RecipientPhone)
	if err != nil {
		return nil, err
	}

	pickup, err := parcel.NewAddress(params.PickupStreet, params.PickupCity, params.PickupPostcode)
	if err != nil {
		return nil, err
	}

	delivery, err := parcel.NewAddress(params.DeliveryStreet, params.DeliveryCity, params.DeliveryPostcode)
	if err != nil {
		return nil, err
	}

	details, err := parcel.NewDetails(
		params.PackageType, params.WeightKg, params.DeclaredValue, params.Dimensions, params.Notes,
	)
	if err != nil {
		return nil, err
	}

	serviceType, err := parcel.ServiceTypeFromString(params.ServiceType)
	if err != nil {
		return nil, err
	}

	pkg, err := parcel.NewPackage(party, recipient, pickup, delivery, details, serviceType, time.Now())
	if err != nil {
		return nil, err
	}

	h.resolveCoordinates(ctx, pkg)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PackageRepository().Add(ctx, pkg); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pkg, nil
}

// resolveCoordinates geocodes both addresses best-effort. A nil point means
// the address did not resolve; errors are logged and swallowed.
func (h *CreateBookingCommandHandler) resolveCoordinates(ctx context.Context, pkg *parcel.Package) {
	if point, err := h.geocoder.Geocode(ctx, pkg.PickupAddress().FullText()); err != nil {
		h.logger.WarnContext(ctx, "pickup geocoding failed", "error", err)
	} else if point != nil {
		_ = pkg.SetPickupPoint(*point)
	}

	if point, err := h.geocoder.Geocode(ctx, pkg.DeliveryAddress().FullText()); err != nil {
		h.logger.WarnContext(ctx, "delivery geocoding failed", "error", err)
	} else if point != nil {
		_ = pkg.SetDeliveryPoint(*point)
	}
}
