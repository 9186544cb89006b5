package commands

import (
	"context"
	"errors"
	"log/slog"

	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"
)

// BackfillCoordinatesCommandHandler re-geocodes pending packages whose
// pickup or delivery coordinates never resolved. Booking-time geocoding is
// best-effort, so this sweep is what eventually makes packages rankable in
// nearby-job queries.
type BackfillCoordinatesCommandHandler struct {
	uowFactory PackageUoWFactory
	geocoder   ports.Geocoder
	logger     *slog.Logger
}

// NewBackfillCoordinatesCommandHandler creates a handler for coordinate backfill.
func NewBackfillCoordinatesCommandHandler(
	uowFactory PackageUoWFactory,
	geocoder ports.Geocoder,
	logger *slog.Logger,
) BackfillCoordinatesCommandHandler {
	return BackfillCoordinatesCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		logger:     logger.With("component", "backfill_coordinates"),
	}
}

// Handle sweeps one batch and returns how many packages gained coordinates.
// Individual geocoding failures are logged and skipped; they do not abort
// the sweep.
func (h *BackfillCoordinatesCommandHandler) Handle(ctx context.Context, cmd BackfillCoordinatesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PackageRepository()

	packages, err := repo.GetPendingMissingCoordinates(ctx, cmd.Limit())
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, pkg := range packages {
		if !h.resolve(ctx, pkg) {
			continue
		}

		if err = repo.Update(ctx, pkg); err != nil {
			// A package claimed or cancelled since the batch was selected no
			// longer needs coordinates for job ranking.
			if errors.Is(err, errs.ErrAlreadyAssigned) || errors.Is(err, errs.ErrInvalidTransition) {
				h.logger.InfoContext(ctx, "package left pending mid-sweep, skipped",
					"package_id", pkg.ID().String())
				continue
			}
			return 0, err
		}
		updated++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return updated, nil
}

// resolve geocodes the package's missing sides and reports whether
// anything changed.
func (h *BackfillCoordinatesCommandHandler) resolve(ctx context.Context, pkg *parcel.Package) bool {
	changed := false

	if pkg.PickupPoint() == nil {
		point, err := h.geocoder.Geocode(ctx, pkg.PickupAddress().FullText())
		if err != nil {
			h.logger.WarnContext(ctx, "pickup geocoding failed",
				"package_id", pkg.ID().String(), "error", err)
		} else if point != nil {
			_ = pkg.SetPickupPoint(*point)
			changed = true
		}
	}

	if pkg.DeliveryPoint() == nil {
		point, err := h.geocoder.Geocode(ctx, pkg.DeliveryAddress().FullText())
		if err != nil {
			h.logger.WarnContext(ctx, "delivery geocoding failed",
				"package_id", pkg.ID().String(), "error", err)
		} else if point != nil {
			_ = pkg.SetDeliveryPoint(*point)
			changed = true
		}
	}

	return changed
}
