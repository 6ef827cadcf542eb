package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
)

// JobManager coordinates the scheduled assignment passes: one job per intake
// source, sharing the same command handler.
type JobManager struct {
	immediatePassJob    *AssignmentPassJob
	subscriptionPassJob *AssignmentPassJob
}

// NewJobManager creates both assignment pass jobs.
func NewJobManager(
	handler *commands.ProcessOrderBatchCommandHandler,
	immediateSchedule string,
	subscriptionSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		immediatePassJob:    NewAssignmentPassJob(handler, order.SourceImmediate, immediateSchedule, logger),
		subscriptionPassJob: NewAssignmentPassJob(handler, order.SourceSubscription, subscriptionSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.immediatePassJob.Start(); err != nil {
		return fmt.Errorf("failed to start immediate assignment pass: %w", err)
	}

	if err := jm.subscriptionPassJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.immediatePassJob.Stop()
		return fmt.Errorf("failed to start subscription assignment pass: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.subscriptionPassJob.Stop()
	jm.immediatePassJob.Stop()
}
