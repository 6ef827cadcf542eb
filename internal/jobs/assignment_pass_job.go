package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// AssignmentPassJob runs the batch assignment pass for one intake source on a
// fixed schedule. The pass itself absorbs per-order failures, so the job only
// logs pass-level errors.
type AssignmentPassJob struct {
	handler  *commands.ProcessOrderBatchCommandHandler
	source   order.Source
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAssignmentPassJob creates a scheduled assignment pass. schedule is a
// six-field cron expression with seconds.
func NewAssignmentPassJob(
	handler *commands.ProcessOrderBatchCommandHandler,
	source order.Source,
	schedule string,
	logger *slog.Logger,
) *AssignmentPassJob {
	return &AssignmentPassJob{
		handler:  handler,
		source:   source,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "assignment_pass_job", "source", source),
	}
}

// Start schedules the pass.
func (j *AssignmentPassJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewProcessOrderBatchCommand(j.source)
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment pass command construction failed", "error", err)
			return
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment pass failed", "error", err)
			return
		}

		if result.Assigned > 0 || result.NotAssigned > 0 {
			j.logger.InfoContext(ctx, "Assignment pass completed",
				"assigned", result.Assigned, "not_assigned", result.NotAssigned)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment pass job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduled pass.
func (j *AssignmentPassJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment pass job stopped")
}
