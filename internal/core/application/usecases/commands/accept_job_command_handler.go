package commands

import (
	"context"
	"log/slog"
	"time"

	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"
)

// AcceptJobCommandHandler handles a driver claiming a pending package.
//
// The claim is written conditionally: the repository's Claim only succeeds
// if the package is still pending with no driver at commit time, so of two
// racing drivers exactly one wins and the loser gets AlreadyAssignedError.
// The status change and the audit event commit in the same transaction.
type AcceptJobCommandHandler struct {
	uowFactory PackageUoWFactory
	cache      ports.TrackingCache
	logger     *slog.Logger
}

// NewAcceptJobCommandHandler creates a handler for job claims.
func NewAcceptJobCommandHandler(
	uowFactory PackageUoWFactory,
	cache ports.TrackingCache,
	logger *slog.Logger,
) AcceptJobCommandHandler {
	return AcceptJobCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With("component", "accept_job"),
	}
}

// Handle processes the claim and returns the package as assigned to the driver.
func (h *AcceptJobCommandHandler) Handle(ctx context.Context, cmd AcceptJobCommand) (*parcel.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !cmd.Driver().IsDriver() {
		return nil, errs.NewNotAuthorizedError("only drivers can accept jobs")
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

	if err = pkg.Assign(cmd.Driver().ID(), now); err != nil {
		return nil, err
	}

	// The in-memory check above can race with another driver's commit.
	// Claim re-checks the precondition inside the UPDATE itself.
	if err = repo.Claim(ctx, pkg.ID(), cmd.Driver().ID(), now); err != nil {
		return nil, err
	}

	event, err := parcel.NewEvent(pkg.ID(), parcel.Assigned, now)
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
