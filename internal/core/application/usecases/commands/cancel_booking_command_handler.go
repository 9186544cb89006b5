package commands

import (
	"context"
	"log/slog"
	"time"

	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/ports"
)

// CancelBookingCommandHandler handles the sender withdrawing a pending
// booking. The cancellation writes conditionally: it succeeds only if the
// package is still pending and unclaimed at commit time, and appends the
// audit event in the same transaction.
type CancelBookingCommandHandler struct {
	uowFactory PackageUoWFactory
	cache      ports.TrackingCache
	logger     *slog.Logger
}

// NewCancelBookingCommandHandler creates a handler for booking cancellations.
func NewCancelBookingCommandHandler(
	uowFactory PackageUoWFactory,
	cache ports.TrackingCache,
	logger *slog.Logger,
) CancelBookingCommandHandler {
	return CancelBookingCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With("component", "cancel_booking"),
	}
}

// Handle processes the cancellation and returns the cancelled package.
func (h *CancelBookingCommandHandler) Handle(ctx context.Context, cmd CancelBookingCommand) (*parcel.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if err = pkg.Cancel(cmd.Sender().ID()); err != nil {
		return nil, err
	}

	if err = repo.CancelPending(ctx, pkg.ID()); err != nil {
		return nil, err
	}

	event, err := parcel.NewEvent(pkg.ID(), parcel.Cancelled, now)
	if err != nil {
		return nil, err
	}
	if err = repo.AddEvent(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.cache.Invalidate(ctx, pkg.TrackingNumber()); err != nil {
		h.logger.WarnContext(ctx, "tracking cache invalidation failed",
			"tracking_number", pkg.TrackingNumber(), "error", err)
	}

	return pkg, nil
}
