package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

const custodyAuditJobName = "custody_audit"

// CustodyAuditHandler is satisfied by commands.AuditCustodyCommandHandler.
type CustodyAuditHandler interface {
	Handle(ctx context.Context, command commands.AuditCustodyCommand) error
}

// CustodyAuditJob re-verifies the custody chains of recently handed over
// items. Broken chains are logged as data-quality warnings and left as they
// are.
type CustodyAuditJob struct {
	handler CustodyAuditHandler
	spec    string
	window  time.Duration
	tracker JobTracker
	clock   func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCustodyAuditJob creates the job. A zero window audits the whole log on
// every run.
func NewCustodyAuditJob(
	handler CustodyAuditHandler,
	spec string,
	window time.Duration,
	tracker JobTracker,
	logger *slog.Logger,
) *CustodyAuditJob {
	return &CustodyAuditJob{
		handler: handler,
		spec:    spec,
		window:  window,
		tracker: tracker,
		clock:   func() time.Time { return time.Now().UTC() },
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "custody_audit_job"),
	}
}

// Run performs one audit. It returns the storage error if the audit could
// not complete; broken chains are logged, not returned.
func (j *CustodyAuditJob) Run(ctx context.Context) error {
	var since time.Time
	if j.window > 0 {
		since = j.clock().Add(-j.window)
	}

	err := j.handler.Handle(ctx, commands.NewAuditCustodyCommand(since))
	if err != nil && errors.Is(err, errs.ErrIntegrity) {
		problems := flatten(err)
		for _, problem := range problems {
			j.logger.WarnContext(ctx, "Custody chain is broken", "error", problem)
		}
		j.logger.WarnContext(ctx, "Custody audit found broken chains", "count", len(problems), "since", since)
		return nil
	}
	return err
}

// Start schedules the audit.
func (j *CustodyAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		run := track(j.tracker, custodyAuditJobName)
		if err := run.End(j.Run(ctx)); err != nil {
			j.logger.ErrorContext(ctx, "Custody audit job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Custody audit job started", "schedule", j.spec)
	return nil
}

// Stop waits for a running audit to finish.
func (j *CustodyAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Custody audit job stopped")
}

// flatten unpacks joined errors down to the individual problems.
func flatten(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}

	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, flatten(e)...)
	}
	return out
}
