package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"laundry/internal/core/domain/model/staff"
	"laundry/internal/observability"
)

// JobTracker records job runs. *observability.Metrics implements it.
type JobTracker interface {
	Track(job string) *observability.Tracker
}

func track(t JobTracker, job string) *observability.Tracker {
	if t == nil {
		return nil
	}
	return t.Track(job)
}

// Schedule holds the cron specs (with seconds) of every job.
type Schedule struct {
	CustodyAudit       string
	CustodyAuditWindow time.Duration
	OverdueOrders      string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	custodyAuditJob  *CustodyAuditJob
	overdueOrdersJob *OverdueOrdersJob
}

// NewJobManager creates a job manager with all jobs. actor is the super admin
// the overdue scan runs as.
func NewJobManager(
	auditHandler CustodyAuditHandler,
	overdueHandler OverdueOrdersHandler,
	actor staff.Actor,
	schedule Schedule,
	tracker JobTracker,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		custodyAuditJob:  NewCustodyAuditJob(auditHandler, schedule.CustodyAudit, schedule.CustodyAuditWindow, tracker, logger),
		overdueOrdersJob: NewOverdueOrdersJob(overdueHandler, actor, schedule.OverdueOrders, tracker, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.custodyAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start custody audit job: %w", err)
	}

	if err := jm.overdueOrdersJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.custodyAuditJob.Stop()
		return fmt.Errorf("failed to start overdue orders job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueOrdersJob.Stop()
	jm.custodyAuditJob.Stop()
}
