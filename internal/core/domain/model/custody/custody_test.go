package custody_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func stagePtr(s custody.Stage) *custody.Stage {
	return &s
}

func params(itemID kernel.UUID, from *custody.Stage, to custody.Stage) custody.HandoverParams {
	return custody.HandoverParams{
		ID:             kernel.NewUUID(),
		OrganizationID: kernel.NewUUID(),
		ItemID:         itemID,
		OrderID:        kernel.NewUUID(),
		From:           from,
		To:             to,
		HandedOverBy:   kernel.NewUUID(),
	}
}

func TestStage_CanFollow(t *testing.T) {
	tests := []struct {
		name    string
		from    *custody.Stage
		to      custody.Stage
		wantErr bool
	}{
		{"first handover into washing", nil, custody.StageWashing, false},
		{"first handover into drying", nil, custody.StageDrying, true},
		{"washing to drying", stagePtr(custody.StageWashing), custody.StageDrying, false},
		{"washing to ironing", stagePtr(custody.StageWashing), custody.StageIroning, true},
		{"qc rework to washing", stagePtr(custody.StageQC), custody.StageWashing, false},
		{"qc rework to ironing", stagePtr(custody.StageQC), custody.StageIroning, false},
		{"packaging to outlet return", stagePtr(custody.StagePackaging), custody.StageOutletReturn, false},
		{"outlet return back to washing", stagePtr(custody.StageOutletReturn), custody.StageWashing, true},
		{"drying back to washing", stagePtr(custody.StageDrying), custody.StageWashing, true},
	}

	for _, tt := range tests {
		t.Run("should handle "+tt.name, func(t *testing.T) {
			err := tt.to.CanFollow(tt.from)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestImpliedItemMove(t *testing.T) {
	t.Run("should move items that are ready for the station", func(t *testing.T) {
		cases := map[custody.Stage][2]order.Stage{
			custody.StageWashing:      {order.StageReceived, order.StageAwaitingWash},
			custody.StageDrying:       {order.StageWashingComplete, order.StageAwaitingDry},
			custody.StageIroning:      {order.StageDryingComplete, order.StageAwaitingIron},
			custody.StageQC:           {order.StageIroningComplete, order.StageAwaitingQC},
			custody.StagePackaging:    {order.StageQCPassed, order.StageAwaitingPackage},
			custody.StageOutletReturn: {order.StageInTransitToOutlet, order.StageReceivedAtOutlet},
		}
		for to, stages := range cases {
			target, move, err := custody.ImpliedItemMove(to, stages[0])
			require.NoError(t, err, to.String())
			assert.True(t, move)
			assert.Equal(t, stages[1], target)
		}
	})

	t.Run("should leave reworked items where quality control put them", func(t *testing.T) {
		target, move, err := custody.ImpliedItemMove(custody.StageDrying, order.StageReturnedToDry)

		require.NoError(t, err)
		assert.False(t, move)
		assert.Equal(t, order.StageReturnedToDry, target)
	})

	t.Run("should reject items that are not ready", func(t *testing.T) {
		_, _, err := custody.ImpliedItemMove(custody.StageQC, order.StageInIroning)
		require.ErrorIs(t, err, errs.ErrInvalidStageTransition)
	})
}

func TestNewHandover(t *testing.T) {
	itemID := kernel.NewUUID()

	t.Run("should start a chain and record the event", func(t *testing.T) {
		receiver := kernel.NewUUID()
		p := params(itemID, nil, custody.StageWashing)
		p.ReceivedBy = &receiver

		h, err := custody.NewHandover(p, nil, testNow)

		require.NoError(t, err)
		assert.Nil(t, h.FromStage())
		assert.Equal(t, custody.StageWashing, h.ToStage())
		require.NotNil(t, h.ReceivedAt())
		assert.Equal(t, testNow, *h.ReceivedAt())
		events := h.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, custody.EventHandoverRecorded, events[0].EventName())
	})

	t.Run("should leave receipt empty when nobody signed", func(t *testing.T) {
		h, err := custody.NewHandover(params(itemID, nil, custody.StageWashing), nil, testNow)

		require.NoError(t, err)
		assert.Nil(t, h.ReceivedBy())
		assert.Nil(t, h.ReceivedAt())
	})

	t.Run("should continue from the previous handover", func(t *testing.T) {
		first, err := custody.NewHandover(params(itemID, nil, custody.StageWashing), nil, testNow)
		require.NoError(t, err)

		second, err := custody.NewHandover(
			params(itemID, stagePtr(custody.StageWashing), custody.StageDrying), first, testNow.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, custody.StageWashing, *second.FromStage())
	})

	t.Run("should reject a break in the chain", func(t *testing.T) {
		first, err := custody.NewHandover(params(itemID, nil, custody.StageWashing), nil, testNow)
		require.NoError(t, err)

		_, err = custody.NewHandover(
			params(itemID, stagePtr(custody.StageIroning), custody.StageQC), first, testNow)

		require.ErrorIs(t, err, errs.ErrIntegrity)
	})

	t.Run("should reject a from stage on the first handover", func(t *testing.T) {
		_, err := custody.NewHandover(params(itemID, stagePtr(custody.StageWashing), custody.StageDrying), nil, testNow)
		require.ErrorIs(t, err, errs.ErrIntegrity)
	})
}

func TestVerifyChain(t *testing.T) {
	itemID := kernel.NewUUID()
	org := kernel.NewUUID()

	restore := func(t *testing.T, from *custody.Stage, to custody.Stage, at time.Time) *custody.Handover {
		h, err := custody.RestoreHandover(custody.HandoverSnapshot{
			ID: kernel.NewUUID(), OrganizationID: org, ItemID: itemID, OrderID: kernel.NewUUID(),
			FromStage: from, ToStage: to, HandedOverBy: kernel.NewUUID(), HandedOverAt: at,
		})
		require.NoError(t, err)
		return h
	}

	t.Run("should accept a continuous chain in any input order", func(t *testing.T) {
		chain := []*custody.Handover{
			restore(t, stagePtr(custody.StageWashing), custody.StageDrying, testNow.Add(time.Hour)),
			restore(t, nil, custody.StageWashing, testNow),
			restore(t, stagePtr(custody.StageDrying), custody.StageIroning, testNow.Add(2*time.Hour)),
		}
		require.NoError(t, custody.VerifyChain(itemID, chain))
	})

	t.Run("should report a gap", func(t *testing.T) {
		chain := []*custody.Handover{
			restore(t, nil, custody.StageWashing, testNow),
			restore(t, stagePtr(custody.StageIroning), custody.StageQC, testNow.Add(time.Hour)),
		}

		err := custody.VerifyChain(itemID, chain)

		require.ErrorIs(t, err, errs.ErrIntegrity)
		assert.Contains(t, err.Error(), "custody chain")
	})

	t.Run("should accept an empty history", func(t *testing.T) {
		require.NoError(t, custody.VerifyChain(itemID, nil))
	})
}
