package jobs

import (
	"fmt"
	"log/slog"
)

type Config struct {
	LowStockSchedule  string
	LowStockThreshold int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	lowStockReportJob *LowStockReportJob
	logger            *slog.Logger
}

// NewJobManager creates the jobs enabled by cfg.
func NewJobManager(
	lowStockHandler LowStockBooksHandler,
	cfg Config,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{logger: logger.With("component", "job_manager")}
	if cfg.LowStockSchedule != "" {
		jm.lowStockReportJob = NewLowStockReportJob(lowStockHandler, cfg.LowStockSchedule, cfg.LowStockThreshold, logger)
	}
	return jm
}

// StartAll starts all enabled jobs.
func (jm *JobManager) StartAll() error {
	if jm.lowStockReportJob == nil {
		jm.logger.Info("Low stock report job disabled")
		return nil
	}

	if err := jm.lowStockReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start low stock report job: %w", err)
	}
	return nil
}

// StopAll stops all started jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.lowStockReportJob != nil {
		jm.lowStockReportJob.Stop()
	}
}
