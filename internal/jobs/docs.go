// Package jobs provides scheduled background tasks for the courier service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the booking service.
//
// # Available Jobs
//
// 1. GeocodeBackfillJob - Runs every minute to retry geocoding for pending
// packages whose pickup or delivery coordinates never resolved
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(backfillHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The backfill job uses the cron expression "0 * * * * *", running at the
// top of every minute. Booking-time geocoding is best-effort, so this sweep
// is what eventually makes every package rankable in nearby-job queries.
//
// # Error Handling
//
// - Sweep failures are logged and retried on the next tick
// - Individual geocoding failures inside a sweep are handled by the command
// handler and never abort the batch
package jobs
