package commands

import (
	"errors"

	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrBackfillCoordinatesCommandIsNotConstructed = errors.New(
	"BackfillCoordinatesCommand must be created via NewBackfillCoordinatesCommand constructor",
)

// BatchLimitMax bounds one backfill sweep so a cron run cannot hammer the
// geocoder with an unbounded batch.
const BatchLimitMax = 500

// BackfillCoordinatesCommand requests a geocoding sweep over pending
// packages whose coordinates are still unresolved, bounded by a batch limit.
type BackfillCoordinatesCommand struct {
	limit int

	guard guard.ConstructorGuard
}

// NewBackfillCoordinatesCommand creates a backfill command for up to limit packages.
func NewBackfillCoordinatesCommand(limit int) (BackfillCoordinatesCommand, error) {
	if limit <= 0 || limit > BatchLimitMax {
		return BackfillCoordinatesCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, BatchLimitMax)
	}

	return BackfillCoordinatesCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BackfillCoordinatesCommand) Validate() error {
	return c.guard.Validate(ErrBackfillCoordinatesCommandIsNotConstructed)
}

// Limit returns the maximum number of packages to process in one sweep.
func (c BackfillCoordinatesCommand) Limit() int {
	return c.limit
}
