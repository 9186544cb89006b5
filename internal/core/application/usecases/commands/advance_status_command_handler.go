package commands

import (
	"context"
	"log/slog"
	"time"

	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/ports"
)

// AdvanceStatusCommandHandler handles the assigned driver moving a package
// one step along the delivery chain.
//
// The update is conditional on the package still holding its current status
// at commit time, so re-issuing an already-applied advance fails with
// InvalidTransitionError instead of writing a duplicate event. The status
// change and its audit event commit in the same transaction.
type AdvanceStatusCommandHandler struct {
	uowFactory PackageUoWFactory
	cache      ports.TrackingCache
	logger     *slog.Logger
}

// NewAdvanceStatusCommandHandler creates a handler for status advances.
func NewAdvanceStatusCommandHandler(
	uowFactory PackageUoWFactory,
	cache ports.TrackingCache,
	logger *slog.Logger,
) AdvanceStatusCommandHandler {
	return AdvanceStatusCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With("component", "advance_status"),
	}
}

// Handle processes the advance and returns the package in its new status.
func (h *AdvanceStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceStatusCommand) (*parcel.Package, error) {
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

	from := pkg.Status()
	if err = pkg.Advance(cmd.Driver().ID(), cmd.NewStatus(), now); err != nil {
		return nil, err
	}

	if err = repo.AdvanceStatus(ctx, pkg.ID(), from, cmd.NewStatus(), now); err != nil {
		return nil, err
	}

	event, err := parcel.NewEvent(pkg.ID(), cmd.NewStatus(), now)
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
