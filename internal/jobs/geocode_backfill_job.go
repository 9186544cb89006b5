package jobs

import (
	"context"
	"log/slog"

	"courier/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// backfillBatchLimit caps how many packages one sweep geocodes. Keeps each
// cron run short and within the Nominatim usage policy.
const backfillBatchLimit = 25

// GeocodeBackfillJob periodically retries geocoding for pending packages
// whose booking-time lookup failed or returned no match. Until coordinates
// resolve, those packages cannot appear in nearby-job results.
type GeocodeBackfillJob struct {
	handler commands.BackfillCoordinatesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewGeocodeBackfillJob creates the backfill job. It runs once a minute.
func NewGeocodeBackfillJob(handler commands.BackfillCoordinatesCommandHandler, logger *slog.Logger) *GeocodeBackfillJob {
	return &GeocodeBackfillJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "geocode_backfill_job"),
	}
}

// Start schedules the backfill sweep to run at the top of every minute.
func (j *GeocodeBackfillJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewBackfillCoordinatesCommand(backfillBatchLimit)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Geocode backfill command construction failed", "error", cmdErr)
			return
		}

		resolved, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Geocode backfill job failed", "error", handleErr)
			return
		}

		if resolved > 0 {
			j.logger.InfoContext(ctx, "Geocode backfill resolved packages", "count", resolved)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Geocode backfill job started (running every minute)")
	return nil
}

// Stop stops the backfill job.
func (j *GeocodeBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Geocode backfill job stopped")
}
