package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/observability"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobNow = time.Date(2026, 4, 14, 6, 0, 0, 0, time.UTC)

type auditFunc func(ctx context.Context, command commands.AuditCustodyCommand) error

func (f auditFunc) Handle(ctx context.Context, command commands.AuditCustodyCommand) error {
	return f(ctx, command)
}

type overdueFunc func(ctx context.Context, query queries.ListOverdueOrdersQuery) ([]queries.OverdueOrderView, error)

func (f overdueFunc) Handle(ctx context.Context, query queries.ListOverdueOrdersQuery) ([]queries.OverdueOrderView, error) {
	return f(ctx, query)
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func superAdmin(t *testing.T) staff.Actor {
	t.Helper()
	actor, err := staff.NewActor(kernel.NewUUID(), nil, staff.SuperAdmin)
	require.NoError(t, err)
	return actor
}

func TestCustodyAuditJob_Run(t *testing.T) {
	t.Run("audits the window before now", func(t *testing.T) {
		var since time.Time
		logger, _ := bufferLogger()
		job := NewCustodyAuditJob(auditFunc(func(_ context.Context, command commands.AuditCustodyCommand) error {
			since = command.Since()
			return nil
		}), "@every 1h", 24*time.Hour, nil, logger)
		job.clock = func() time.Time { return jobNow }

		require.NoError(t, job.Run(t.Context()))
		assert.Equal(t, jobNow.Add(-24*time.Hour), since)
	})

	t.Run("zero window audits the whole log", func(t *testing.T) {
		var since time.Time
		logger, _ := bufferLogger()
		job := NewCustodyAuditJob(auditFunc(func(_ context.Context, command commands.AuditCustodyCommand) error {
			since = command.Since()
			return nil
		}), "@every 1h", 0, nil, logger)

		require.NoError(t, job.Run(t.Context()))
		assert.True(t, since.IsZero())
	})

	t.Run("logs every broken chain without failing", func(t *testing.T) {
		first := errs.NewIntegrityError("custody chain", "item-1", errors.New("gap"))
		second := errs.NewIntegrityError("custody chain", "item-2", errors.New("gap"))
		logger, buf := bufferLogger()
		job := NewCustodyAuditJob(auditFunc(func(context.Context, commands.AuditCustodyCommand) error {
			return errors.Join(errors.Join(first), second)
		}), "@every 1h", time.Hour, nil, logger)

		require.NoError(t, job.Run(t.Context()))
		out := buf.String()
		assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("Custody chain is broken")))
		assert.Contains(t, out, "item-1")
		assert.Contains(t, out, "item-2")
		assert.Contains(t, out, "count=2")
	})

	t.Run("returns storage errors", func(t *testing.T) {
		boom := errors.New("connection reset")
		logger, _ := bufferLogger()
		job := NewCustodyAuditJob(auditFunc(func(context.Context, commands.AuditCustodyCommand) error {
			return boom
		}), "@every 1h", time.Hour, nil, logger)

		assert.ErrorIs(t, job.Run(t.Context()), boom)
	})
}

func TestOverdueOrdersJob_Run(t *testing.T) {
	t.Run("scans all tenants as the platform", func(t *testing.T) {
		actor := superAdmin(t)
		view := queries.OverdueOrderView{
			ID:             kernel.NewUUID(),
			OrganizationID: kernel.NewUUID(),
			OutletID:       kernel.NewUUID(),
			BagNumber:      "B-77",
			Status:         order.StatusInProcessing,
			DueAt:          jobNow.Add(-3 * time.Hour),
			Overdue:        3 * time.Hour,
		}
		var got queries.ListOverdueOrdersQuery
		logger, buf := bufferLogger()
		job := NewOverdueOrdersJob(overdueFunc(func(_ context.Context, q queries.ListOverdueOrdersQuery) ([]queries.OverdueOrderView, error) {
			got = q
			return []queries.OverdueOrderView{view}, nil
		}), actor, "@every 1h", nil, logger)
		job.clock = func() time.Time { return jobNow }

		overdue, err := job.Run(t.Context())

		require.NoError(t, err)
		assert.Len(t, overdue, 1)
		assert.Nil(t, got.OrganizationID())
		assert.Equal(t, jobNow, got.Now())
		assert.Equal(t, actor, got.Actor())
		assert.Contains(t, buf.String(), "bag_number=B-77")
		assert.Contains(t, buf.String(), "status=in_processing")
	})

	t.Run("passes handler errors through", func(t *testing.T) {
		logger, _ := bufferLogger()
		job := NewOverdueOrdersJob(overdueFunc(func(context.Context, queries.ListOverdueOrdersQuery) ([]queries.OverdueOrderView, error) {
			return nil, errs.NewPermissionDeniedError("attendant", "list overdue orders")
		}), superAdmin(t), "@every 1h", nil, logger)

		_, err := job.Run(t.Context())

		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	})
}

func TestJobManager(t *testing.T) {
	logger, _ := bufferLogger()
	audit := auditFunc(func(context.Context, commands.AuditCustodyCommand) error { return nil })
	overdue := overdueFunc(func(context.Context, queries.ListOverdueOrdersQuery) ([]queries.OverdueOrderView, error) {
		return nil, nil
	})

	t.Run("starts and stops every job", func(t *testing.T) {
		jm := NewJobManager(audit, overdue, superAdmin(t), Schedule{
			CustodyAudit:  "0 */15 * * * *",
			OverdueOrders: "0 0 * * * *",
		}, observability.NewMetrics(), logger)

		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})

	t.Run("rejects a bad schedule", func(t *testing.T) {
		jm := NewJobManager(audit, overdue, superAdmin(t), Schedule{
			CustodyAudit:  "0 */15 * * * *",
			OverdueOrders: "every now and then",
		}, nil, logger)

		err := jm.StartAll()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "overdue orders job")
	})
}
