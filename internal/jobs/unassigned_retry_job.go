package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// unassignedRetrySchedule fires once a minute at second 30, offset from the
// driver search ticks so the two loops do not hit the same orders at the
// same instant.
const unassignedRetrySchedule = "30 * * * * *"

// UnassignedRetryJob drives the unassigned-order retry loop, the second
// line of defense behind the driver search: once a minute it retries
// assignment for home-delivery orders still without a partner and
// escalates the ones that stay stuck.
type UnassignedRetryJob struct {
	handler commands.RetryUnassignedOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewUnassignedRetryJob creates the retry job.
func NewUnassignedRetryJob(handler commands.RetryUnassignedOrdersCommandHandler, logger *slog.Logger) *UnassignedRetryJob {
	return &UnassignedRetryJob{
		handler: handler,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "unassigned_retry_job"),
	}
}

// Start begins the retry job.
func (j *UnassignedRetryJob) Start() error {
	_, err := j.cron.AddFunc(unassignedRetrySchedule, func() {
		ctx := context.Background()
		cmd := commands.NewRetryUnassignedOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Unassigned retry job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unassigned retry job started (running every minute at :30)")
	return nil
}

// Stop stops the retry job.
func (j *UnassignedRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Unassigned retry job stopped")
}
