// Package jobs provides scheduled background tasks for the bookstore.
//
// Jobs run on github.com/robfig/cron/v3 schedules with seconds precision and
// never take part in order transitions.
//
// # Available Jobs
//
// 1. LowStockReportJob - logs every book whose stock is at or below a threshold
//
// # Usage
//
//	jobManager := jobs.NewJobManager(lowStockHandler, jobs.Config{
//		LowStockSchedule:  "0 */15 * * * *",
//		LowStockThreshold: 3,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// An empty schedule disables the job.
package jobs
