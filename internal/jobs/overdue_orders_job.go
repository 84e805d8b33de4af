package jobs

import (
	"context"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/staff"

	"github.com/robfig/cron/v3"
)

const overdueOrdersJobName = "overdue_orders"

// OverdueOrdersHandler is satisfied by queries.ListOverdueOrdersQueryHandler.
type OverdueOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOverdueOrdersQuery) ([]queries.OverdueOrderView, error)
}

// OverdueOrdersJob reports orders past their due time across all tenants.
type OverdueOrdersJob struct {
	handler OverdueOrdersHandler
	actor   staff.Actor
	spec    string
	tracker JobTracker
	clock   func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueOrdersJob creates the job. actor must be a super admin since the
// scan is not scoped to an organization.
func NewOverdueOrdersJob(
	handler OverdueOrdersHandler,
	actor staff.Actor,
	spec string,
	tracker JobTracker,
	logger *slog.Logger,
) *OverdueOrdersJob {
	return &OverdueOrdersJob{
		handler: handler,
		actor:   actor,
		spec:    spec,
		tracker: tracker,
		clock:   func() time.Time { return time.Now().UTC() },
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "overdue_orders_job"),
	}
}

// Run lists the overdue orders once and logs each of them.
func (j *OverdueOrdersJob) Run(ctx context.Context) ([]queries.OverdueOrderView, error) {
	query, err := queries.NewListOverdueOrdersQuery(j.actor, nil, j.clock())
	if err != nil {
		return nil, err
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, o := range overdue {
		j.logger.WarnContext(ctx, "Order is overdue",
			"organization_id", o.OrganizationID.String(),
			"outlet_id", o.OutletID.String(),
			"order_id", o.ID.String(),
			"bag_number", o.BagNumber,
			"status", o.Status.String(),
			"overdue", o.Overdue.Round(time.Minute).String(),
		)
	}
	return overdue, nil
}

// Start schedules the scan.
func (j *OverdueOrdersJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		run := track(j.tracker, overdueOrdersJobName)
		overdue, err := j.Run(ctx)
		if err := run.End(err); err != nil {
			j.logger.ErrorContext(ctx, "Overdue orders job failed", "error", err)
			return
		}
		j.logger.InfoContext(ctx, "Overdue orders scanned", "count", len(overdue))
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue orders job started", "schedule", j.spec)
	return nil
}

// Stop waits for a running scan to finish.
func (j *OverdueOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue orders job stopped")
}
