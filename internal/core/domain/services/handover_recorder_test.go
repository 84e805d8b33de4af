package services_test

import (
	"testing"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoverRecorder_Record(t *testing.T) {
	recorder := services.NewHandoverRecorder()

	t.Run("should pass an item from washing to drying", func(t *testing.T) {
		f := newFixture(t, 1)
		item := f.items[0]
		washer := newActor(t, f.org, staff.Washer)
		first, err := recorder.Record(f.order, nil, services.TeamHandover{
			ID: kernel.NewUUID(), ItemID: item.ID(), To: custody.StageWashing,
		}, washer, testNow)
		require.NoError(t, err)
		assert.Equal(t, order.StageAwaitingWash, item.Stage())
		moveItem(t, f.order, item, order.StageInWashing, order.StageWashingComplete)

		from := custody.StageWashing
		dryer := newActor(t, f.org, staff.Dryer)
		receiver := dryer.UserID()
		second, err := recorder.Record(f.order, first, services.TeamHandover{
			ID: kernel.NewUUID(), ItemID: item.ID(), From: &from, To: custody.StageDrying, ReceivedBy: &receiver,
		}, washer, testNow)

		require.NoError(t, err)
		assert.Equal(t, order.StageAwaitingDry, item.Stage())
		assert.True(t, second.ReceivedBy().IsEqual(receiver))
	})

	t.Run("should keep reworked items where quality control sent them", func(t *testing.T) {
		f := newFixture(t, 1)
		item := f.items[0]
		moveItem(t, f.order, item,
			order.StageAwaitingWash, order.StageInWashing, order.StageWashingComplete, order.StageAwaitingDry,
			order.StageInDrying, order.StageDryingComplete, order.StageAwaitingIron, order.StageInIroning,
			order.StageIroningComplete, order.StageAwaitingQC, order.StageInQC, order.StageQCFailed,
			order.StageReturnedToIron)
		qc := custody.StageQC
		previous, err := custody.RestoreHandover(custody.HandoverSnapshot{
			ID: kernel.NewUUID(), OrganizationID: f.org, ItemID: item.ID(), OrderID: f.order.ID(),
			FromStage: nil, ToStage: qc, HandedOverBy: kernel.NewUUID(), HandedOverAt: testNow,
		})
		require.NoError(t, err)

		h, err := recorder.Record(f.order, previous, services.TeamHandover{
			ID: kernel.NewUUID(), ItemID: item.ID(), From: &qc, To: custody.StageIroning,
		}, newActor(t, f.org, staff.QCPackager), testNow)

		require.NoError(t, err)
		assert.Equal(t, custody.StageIroning, h.ToStage())
		assert.Equal(t, order.StageReturnedToIron, item.Stage())
	})

	t.Run("should surface a chain break without moving the item", func(t *testing.T) {
		f := newFixture(t, 1)
		item := f.items[0]
		moveItem(t, f.order, item, order.StageAwaitingWash, order.StageInWashing, order.StageWashingComplete)
		ironing := custody.StageIroning

		_, err := recorder.Record(f.order, nil, services.TeamHandover{
			ID: kernel.NewUUID(), ItemID: item.ID(), From: &ironing, To: custody.StageDrying,
		}, newActor(t, f.org, staff.Washer), testNow)

		require.ErrorIs(t, err, errs.ErrIntegrity)
		assert.Equal(t, order.StageWashingComplete, item.Stage())
	})

	t.Run("should deny attendants", func(t *testing.T) {
		f := newFixture(t, 1)

		_, err := recorder.Record(f.order, nil, services.TeamHandover{
			ID: kernel.NewUUID(), ItemID: f.items[0].ID(), To: custody.StageWashing,
		}, newActor(t, f.org, staff.Attendant), testNow)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})
}
