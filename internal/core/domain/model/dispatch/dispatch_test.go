package dispatch_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newActor(t *testing.T, org kernel.UUID, role staff.Role) staff.Actor {
	t.Helper()
	a, err := staff.NewActor(kernel.NewUUID(), &org, role)
	require.NoError(t, err)
	return a
}

func outlet(t *testing.T) dispatch.Endpoint {
	t.Helper()
	e, err := dispatch.AtOutlet(kernel.NewUUID())
	require.NoError(t, err)
	return e
}

func newInbound(t *testing.T, org kernel.UUID) *dispatch.Dispatch {
	t.Helper()
	d, err := dispatch.NewDispatch(kernel.NewUUID(), org, outlet(t), dispatch.Factory(),
		[]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}, newActor(t, org, staff.Attendant), testNow)
	require.NoError(t, err)
	return d
}

func TestNewDispatch(t *testing.T) {
	org := kernel.NewUUID()

	t.Run("should create a pending trip to the factory", func(t *testing.T) {
		d := newInbound(t, org)

		assert.Equal(t, dispatch.StatusPending, d.Status())
		assert.Equal(t, dispatch.ToFactory, d.Direction())
		assert.Equal(t, order.StageReceived, d.RequiredItemStage())
		assert.Equal(t, custody.StageWashing, d.HandoverStage())
		assert.Nil(t, d.AcceptedAt())
		assert.Nil(t, d.CompletedAt())
		events := d.PullEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(dispatch.StatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "pending", changed.To)
		assert.Empty(t, changed.From)
		assert.Len(t, changed.ItemIDs, 2)
	})

	t.Run("should create a trip back to an outlet", func(t *testing.T) {
		d, err := dispatch.NewDispatch(kernel.NewUUID(), org, dispatch.Factory(), outlet(t),
			[]kernel.UUID{kernel.NewUUID()}, newActor(t, org, staff.QCPackager), testNow)

		require.NoError(t, err)
		assert.Equal(t, dispatch.FromFactory, d.Direction())
		assert.Equal(t, order.StageAwaitingDispatchReturn, d.RequiredItemStage())
		assert.Equal(t, custody.StageOutletReturn, d.HandoverStage())
	})

	t.Run("should require exactly one factory end", func(t *testing.T) {
		requester := newActor(t, org, staff.Attendant)
		items := []kernel.UUID{kernel.NewUUID()}

		_, err := dispatch.NewDispatch(kernel.NewUUID(), org, outlet(t), outlet(t), items, requester, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = dispatch.NewDispatch(kernel.NewUUID(), org, dispatch.Factory(), dispatch.Factory(), items, requester, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject empty and duplicated item lists", func(t *testing.T) {
		requester := newActor(t, org, staff.Attendant)
		item := kernel.NewUUID()

		_, err := dispatch.NewDispatch(kernel.NewUUID(), org, outlet(t), dispatch.Factory(), nil, requester, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = dispatch.NewDispatch(kernel.NewUUID(), org, outlet(t), dispatch.Factory(),
			[]kernel.UUID{item, item}, requester, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should deny roles that cannot request dispatches", func(t *testing.T) {
		_, err := dispatch.NewDispatch(kernel.NewUUID(), org, outlet(t), dispatch.Factory(),
			[]kernel.UUID{kernel.NewUUID()}, newActor(t, org, staff.Washer), testNow)
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})
}

func TestDispatch_Lifecycle(t *testing.T) {
	org := kernel.NewUUID()

	t.Run("should walk from pending to completed", func(t *testing.T) {
		d := newInbound(t, org)
		dispatcher := newActor(t, org, staff.Dispatcher)

		require.NoError(t, d.Accept(dispatcher, testNow.Add(time.Minute)))
		assert.Equal(t, dispatch.StatusAccepted, d.Status())
		require.NotNil(t, d.DispatcherID())
		assert.True(t, d.DispatcherID().IsEqual(dispatcher.UserID()))
		require.NotNil(t, d.AcceptedAt())

		require.NoError(t, d.Start(dispatcher, testNow.Add(2*time.Minute)))
		assert.Equal(t, dispatch.StatusInTransit, d.Status())
		assert.Nil(t, d.CompletedAt())

		require.NoError(t, d.Complete(dispatcher, testNow.Add(time.Hour)))
		assert.Equal(t, dispatch.StatusCompleted, d.Status())
		require.NotNil(t, d.CompletedAt())
		assert.Equal(t, testNow.Add(time.Hour), *d.CompletedAt())
		assert.Len(t, d.PullEvents(), 4)
	})

	t.Run("should only accept pending dispatches", func(t *testing.T) {
		d := newInbound(t, org)
		dispatcher := newActor(t, org, staff.Dispatcher)
		require.NoError(t, d.Accept(dispatcher, testNow))

		err := d.Accept(newActor(t, org, staff.Dispatcher), testNow)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.True(t, d.DispatcherID().IsEqual(dispatcher.UserID()))
	})

	t.Run("should not complete before the trip started", func(t *testing.T) {
		d := newInbound(t, org)
		dispatcher := newActor(t, org, staff.Dispatcher)
		require.NoError(t, d.Accept(dispatcher, testNow))

		require.ErrorIs(t, d.Complete(dispatcher, testNow), errs.ErrInvalidTransition)
		assert.Nil(t, d.CompletedAt())
	})

	t.Run("should keep other dispatchers off an assigned trip", func(t *testing.T) {
		d := newInbound(t, org)
		require.NoError(t, d.Accept(newActor(t, org, staff.Dispatcher), testNow))

		err := d.Start(newActor(t, org, staff.Dispatcher), testNow)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		require.NoError(t, d.Start(newActor(t, org, staff.OrgAdmin), testNow))
	})

	t.Run("should deny attendants accepting", func(t *testing.T) {
		d := newInbound(t, org)
		require.ErrorIs(t, d.Accept(newActor(t, org, staff.Attendant), testNow), errs.ErrPermissionDenied)
	})

	t.Run("should deny dispatchers of another organization", func(t *testing.T) {
		d := newInbound(t, org)
		require.ErrorIs(t, d.Accept(newActor(t, kernel.NewUUID(), staff.Dispatcher), testNow), errs.ErrTenantMismatch)
	})

	t.Run("should cancel until the trip started", func(t *testing.T) {
		attendant := newActor(t, org, staff.Attendant)
		dispatcher := newActor(t, org, staff.Dispatcher)

		pending := newInbound(t, org)
		require.NoError(t, pending.Cancel(attendant, testNow))
		assert.Equal(t, dispatch.StatusCancelled, pending.Status())
		assert.False(t, pending.Status().IsActive())

		started := newInbound(t, org)
		require.NoError(t, started.Accept(dispatcher, testNow))
		require.NoError(t, started.Start(dispatcher, testNow))
		require.ErrorIs(t, started.Cancel(attendant, testNow), errs.ErrInvalidTransition)
	})
}

func TestRestoreDispatch(t *testing.T) {
	org := kernel.NewUUID()
	src := outlet(t)

	t.Run("should restore an accepted dispatch", func(t *testing.T) {
		acceptedAt := testNow
		d, err := dispatch.RestoreDispatch(dispatch.Snapshot{
			ID: kernel.NewUUID(), OrganizationID: org, Source: src, Destination: dispatch.Factory(),
			ItemIDs: []kernel.UUID{kernel.NewUUID()}, Status: dispatch.StatusAccepted,
			RequestedBy: kernel.NewUUID(), CreatedAt: testNow, AcceptedAt: &acceptedAt, Version: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), d.Version())
		assert.True(t, d.OutletID().IsEqual(*src.OutletID()))
	})

	t.Run("should reject a completed dispatch without completed_at", func(t *testing.T) {
		acceptedAt := testNow
		_, err := dispatch.RestoreDispatch(dispatch.Snapshot{
			ID: kernel.NewUUID(), OrganizationID: org, Source: src, Destination: dispatch.Factory(),
			ItemIDs: []kernel.UUID{kernel.NewUUID()}, Status: dispatch.StatusCompleted,
			RequestedBy: kernel.NewUUID(), CreatedAt: testNow, AcceptedAt: &acceptedAt,
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
