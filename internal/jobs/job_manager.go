package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	driverSearchJob    *DriverSearchJob
	unassignedRetryJob *UnassignedRetryJob
	pendingReminderJob *PendingReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	driverSearchHandler commands.ProcessDriverSearchCommandHandler,
	retryHandler commands.RetryUnassignedOrdersCommandHandler,
	reminderHandler commands.RemindPendingOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		driverSearchJob:    NewDriverSearchJob(driverSearchHandler, logger),
		unassignedRetryJob: NewUnassignedRetryJob(retryHandler, logger),
		pendingReminderJob: NewPendingReminderJob(reminderHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.driverSearchJob.Start(); err != nil {
		return fmt.Errorf("failed to start driver search job: %w", err)
	}

	if err := jm.unassignedRetryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.driverSearchJob.Stop()
		return fmt.Errorf("failed to start unassigned retry job: %w", err)
	}

	if err := jm.pendingReminderJob.Start(); err != nil {
		jm.unassignedRetryJob.Stop()
		jm.driverSearchJob.Stop()
		return fmt.Errorf("failed to start pending reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingReminderJob.Stop()
	jm.unassignedRetryJob.Stop()
	jm.driverSearchJob.Stop()
}
