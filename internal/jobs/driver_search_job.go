package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// driverSearchSchedule fires every 30 seconds on the minute boundary.
const driverSearchSchedule = "*/30 * * * * *"

// DriverSearchJob drives the driver search loop. Every 30 seconds it
// processes all orders with an active search: tries an assignment, records
// a failed attempt, or declares a timeout.
type DriverSearchJob struct {
	handler commands.ProcessDriverSearchCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDriverSearchJob creates the driver search job. SkipIfStillRunning
// guards against a slow tick overlapping the next one.
func NewDriverSearchJob(handler commands.ProcessDriverSearchCommandHandler, logger *slog.Logger) *DriverSearchJob {
	return &DriverSearchJob{
		handler: handler,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "driver_search_job"),
	}
}

// Start begins the driver search job.
func (j *DriverSearchJob) Start() error {
	_, err := j.cron.AddFunc(driverSearchSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewProcessDriverSearchCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Driver search job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Driver search job started (running every 30 seconds)")
	return nil
}

// Stop stops the driver search job.
func (j *DriverSearchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Driver search job stopped")
}
