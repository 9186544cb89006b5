package commands

import (
	"context"
	"log/slog"

	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/ports"
)

// EditBookingCommandHandler handles the sender amending a pending booking.
// Validation is all-or-nothing: the first violated field rule aborts the
// edit and leaves the record untouched.
type EditBookingCommandHandler struct {
	uowFactory PackageUoWFactory
	cache      ports.TrackingCache
	logger     *slog.Logger
}

// NewEditBookingCommandHandler creates a handler for booking edits.
func NewEditBookingCommandHandler(
	uowFactory PackageUoWFactory,
	cache ports.TrackingCache,
	logger *slog.Logger,
) EditBookingCommandHandler {
	return EditBookingCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With("component", "edit_booking"),
	}
}

// Handle processes the edit and returns the updated package.
func (h *EditBookingCommandHandler) Handle(ctx context.Context, cmd EditBookingCommand) (*parcel.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	params := cmd.Params()

	recipient, err := parcel.NewRecipient(params.RecipientName, params.RecipientPhone)
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

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PackageRepository()

	pkg, err := repo.Get(ctx, cmd.PackageID())
	if err != nil {
		return nil, err
	}

	if err = pkg.Amend(cmd.Sender().ID(), recipient, delivery, details); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, pkg); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The public snapshot shows the recipient name, so edits invalidate it too.
	if err = h.cache.Invalidate(ctx, pkg.TrackingNumber()); err != nil {
		h.logger.WarnContext(ctx, "tracking cache invalidation failed",
			"tracking_number", pkg.TrackingNumber(), "error", err)
	}

	return pkg, nil
}
