// Package jobs provides the scheduled background passes of the assignment
// engine, built on github.com/robfig/cron/v3.
//
// Two jobs run the same batch command against different intake sources:
// the immediate-order pass and the subscription-order pass. Both are
// coordinated by JobManager:
//
//	jobManager := jobs.NewJobManager(handler, "*/30 * * * * *", "0 * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Schedules are six-field cron expressions with a seconds field. The pass is
// idempotent over the backlog (handled orders drop out of the pending
// predicate), so overlapping or frequent runs are safe.
package jobs
