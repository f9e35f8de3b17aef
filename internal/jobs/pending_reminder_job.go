package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// pendingReminderSchedule fires once a minute at second 45, offset from
// both other loops.
const pendingReminderSchedule = "45 * * * * *"

// PendingReminderJob drives the pending-order reminder loop: once a minute
// it nags shop owners about orders still waiting for acceptance.
type PendingReminderJob struct {
	handler commands.RemindPendingOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPendingReminderJob creates the reminder job.
func NewPendingReminderJob(handler commands.RemindPendingOrdersCommandHandler, logger *slog.Logger) *PendingReminderJob {
	return &PendingReminderJob{
		handler: handler,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "pending_reminder_job"),
	}
}

// Start begins the reminder job.
func (j *PendingReminderJob) Start() error {
	_, err := j.cron.AddFunc(pendingReminderSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewRemindPendingOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Pending reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending reminder job started (running every minute at :45)")
	return nil
}

// Stop stops the reminder job.
func (j *PendingReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending reminder job stopped")
}
