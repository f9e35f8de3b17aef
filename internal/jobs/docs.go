// Package jobs provides the scheduled background loops of the fulfillment
// scheduler.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the three recurring sweeps of the system.
//
// # Available Jobs
//
// 1. DriverSearchJob - runs every 30 seconds to progress active driver searches
// 2. UnassignedRetryJob - runs every minute at :30 to retry stuck home-delivery orders
// 3. PendingReminderJob - runs every minute at :45 to remind shop owners about pending orders
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(searchHandler, retryHandler, reminderHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The two minute-cadence jobs are offset to seconds :30 and :45 so the
// loops never sweep the database at the same instant. Every job runs under
// cron.SkipIfStillRunning, so a slow tick is skipped rather than stacked.
//
// # Error Handling
//
// A failed tick is logged and the next tick starts fresh; per-order errors
// are handled inside the command handlers and never abort a batch.
// Failed job starts will stop any already running jobs.
package jobs
