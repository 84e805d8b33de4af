package commands_test

import (
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/defect"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordHandoverCommandHandler_Handle(t *testing.T) {
	t.Run("should start the custody chain and queue the item for washing", func(t *testing.T) {
		ctx := t.Context()
		org := kernel.NewUUID()
		o := newOrder(t, org, kernel.NewUUID(), 1)
		item := o.Items()[0]

		orders := new(MockOrderRepository)
		handovers := new(MockHandoverRepository)
		uow := new(MockUoW)
		uow.On("OrderRepository").Return(orders).Maybe()
		uow.On("HandoverRepository").Return(handovers).Maybe()
		factory := new(MockCustodyUoWFactory)
		factory.On("Create").Return(uow).Once()

		receiver := kernel.NewUUID()
		cmd, err := commands.NewRecordHandoverCommand(newActor(t, org, staff.Washer), kernel.NewUUID(), item.ID(),
			nil, custody.StageWashing, &receiver)
		require.NoError(t, err)

		var stored []*custody.Handover
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			orders.On("GetByItemID", ctx, item.ID()).Return(o, nil).Once(),
			handovers.On("LastForItem", ctx, item.ID()).Return(nil, nil).Once(),
			orders.On("Update", ctx, o).Return(nil).Once(),
			handovers.On("Add", ctx, mock.Anything).
				Run(func(args mock.Arguments) { stored = args.Get(1).([]*custody.Handover) }).
				Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewRecordHandoverCommandHandler(factory, services.NewHandoverRecorder())
		err = h.Handle(ctx, cmd)
		require.NoError(t, err)

		require.Len(t, stored, 1)
		assert.Equal(t, custody.StageWashing, stored[0].ToStage())
		require.NotNil(t, stored[0].ReceivedBy())
		assert.Equal(t, receiver, *stored[0].ReceivedBy())
		assert.NotNil(t, stored[0].ReceivedAt())
		current, err := o.Item(item.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StageAwaitingWash, current.Stage())
		uow.AssertExpectations(t)
	})

	t.Run("should refuse a broken chain", func(t *testing.T) {
		ctx := t.Context()
		org := kernel.NewUUID()
		o := newOrder(t, org, kernel.NewUUID(), 1)
		item := o.Items()[0]

		washing := custody.StageWashing
		previous, err := custody.RestoreHandover(custody.HandoverSnapshot{
			ID:             kernel.NewUUID(),
			OrganizationID: org,
			ItemID:         item.ID(),
			OrderID:        o.ID(),
			ToStage:        washing,
			HandedOverBy:   kernel.NewUUID(),
			HandedOverAt:   testNow,
		})
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		handovers := new(MockHandoverRepository)
		uow := new(MockUoW)
		uow.On("OrderRepository").Return(orders).Maybe()
		uow.On("HandoverRepository").Return(handovers).Maybe()
		factory := new(MockCustodyUoWFactory)
		factory.On("Create").Return(uow).Once()

		drying := custody.StageDrying
		cmd, err := commands.NewRecordHandoverCommand(newActor(t, org, staff.Dryer), kernel.NewUUID(), item.ID(),
			&drying, custody.StageIroning, nil)
		require.NoError(t, err)

		uow.On("Begin", ctx).Return(nil).Once()
		orders.On("GetByItemID", ctx, item.ID()).Return(o, nil).Once()
		handovers.On("LastForItem", ctx, item.ID()).Return(previous, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewRecordHandoverCommandHandler(factory, services.NewHandoverRecorder())
		err = h.Handle(ctx, cmd)
		require.Error(t, err)
		handovers.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func newDefectUoW() (*MockUoW, *MockOrderRepository, *MockDefectRepository, *MockDefectUoWFactory) {
	orders := new(MockOrderRepository)
	defects := new(MockDefectRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders).Maybe()
	uow.On("DefectRepository").Return(defects).Maybe()
	factory := new(MockDefectUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, orders, defects, factory
}

func TestReportDefectCommandHandler_Handle(t *testing.T) {
	t.Run("should store the report with the order's outlet", func(t *testing.T) {
		ctx := t.Context()
		org := kernel.NewUUID()
		outlet := kernel.NewUUID()
		o := newOrder(t, org, outlet, 1)
		item := o.Items()[0]
		uow, orders, defects, factory := newDefectUoW()

		cmd, err := commands.NewReportDefectCommand(newActor(t, org, staff.Washer), kernel.NewUUID(), item.ID(),
			defect.TypeStainNotRemoved, custody.StageWashing, "Wine stain on the collar")
		require.NoError(t, err)

		var stored *defect.Defect
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			orders.On("GetByItemID", ctx, item.ID()).Return(o, nil).Once(),
			orders.On("Update", ctx, o).Return(nil).Once(),
			defects.On("Add", ctx, mock.AnythingOfType("*defect.Defect")).
				Run(func(args mock.Arguments) { stored = args.Get(1).(*defect.Defect) }).
				Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		err = commands.NewReportDefectCommandHandler(factory).Handle(ctx, cmd)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, outlet, stored.OutletID())
		assert.Equal(t, o.ID(), stored.OrderID())
		assert.False(t, stored.IsResolved())
		orders.AssertExpectations(t)
	})

	t.Run("should not store the report when the order changed concurrently", func(t *testing.T) {
		ctx := t.Context()
		org := kernel.NewUUID()
		o := newOrder(t, org, kernel.NewUUID(), 1)
		item := o.Items()[0]
		uow, orders, _, factory := newDefectUoW()

		cmd, err := commands.NewReportDefectCommand(newActor(t, org, staff.Washer), kernel.NewUUID(), item.ID(),
			defect.TypeDamage, custody.StageWashing, "Torn seam")
		require.NoError(t, err)

		uow.On("Begin", ctx).Return(nil).Once()
		orders.On("GetByItemID", ctx, item.ID()).Return(o, nil).Once()
		orders.On("Update", ctx, o).Return(errs.NewConcurrencyConflictError("order", o.ID().String(), o.Version())).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		err = commands.NewReportDefectCommandHandler(factory).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
		uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should require a description", func(t *testing.T) {
		_, err := commands.NewReportDefectCommand(newActor(t, kernel.NewUUID(), staff.Washer), kernel.NewUUID(),
			kernel.NewUUID(), defect.TypeDamage, custody.StageWashing, "  ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestResolveDefectCommandHandler_Handle(t *testing.T) {
	newReport := func(t *testing.T) (*defect.Defect, kernel.UUID) {
		t.Helper()
		org := kernel.NewUUID()
		o := newOrder(t, org, kernel.NewUUID(), 1)
		d, err := defect.Report(kernel.NewUUID(), o, o.Items()[0].ID(), defect.TypeMissingButton, custody.StageIroning,
			"Second button missing", newActor(t, org, staff.Ironer), testNow)
		require.NoError(t, err)
		d.PullEvents()
		return d, org
	}

	t.Run("should close the report", func(t *testing.T) {
		ctx := t.Context()
		d, org := newReport(t)
		uow, _, defects, factory := newDefectUoW()

		cmd, err := commands.NewResolveDefectCommand(newActor(t, org, staff.QCPackager), d.ID(), "Button sewn back on")
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			defects.On("Get", ctx, d.ID()).Return(d, nil).Once(),
			defects.On("Update", ctx, d).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		err = commands.NewResolveDefectCommandHandler(factory).Handle(ctx, cmd)
		require.NoError(t, err)
		assert.True(t, d.IsResolved())
		assert.Equal(t, "Button sewn back on", d.ResolutionNotes())
	})

	t.Run("should not resolve twice", func(t *testing.T) {
		ctx := t.Context()
		d, org := newReport(t)
		resolver := newActor(t, org, staff.QCPackager)
		require.NoError(t, d.Resolve(resolver, "Fixed", testNow))
		uow, _, defects, factory := newDefectUoW()

		cmd, err := commands.NewResolveDefectCommand(resolver, d.ID(), "Fixed again")
		require.NoError(t, err)

		uow.On("Begin", ctx).Return(nil).Once()
		defects.On("Get", ctx, d.ID()).Return(d, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		err = commands.NewResolveDefectCommandHandler(factory).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, "Fixed", d.ResolutionNotes())
	})

	t.Run("should require notes", func(t *testing.T) {
		_, err := commands.NewResolveDefectCommand(newActor(t, kernel.NewUUID(), staff.QCPackager), kernel.NewUUID(), "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
