package order_test

import (
	"testing"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		held    order.Status
		wantErr bool
	}{
		{"pending to received", order.StatusPending, order.StatusReceived, order.StatusUnknown, false},
		{"received to awaiting pickup", order.StatusReceived, order.StatusAwaitingPickup, order.StatusUnknown, false},
		{"ready for pickup to completed", order.StatusReadyForPickup, order.StatusCompleted, order.StatusUnknown, false},
		{"skipping a status", order.StatusReceived, order.StatusInTransitToFactory, order.StatusUnknown, true},
		{"moving backwards", order.StatusInProcessing, order.StatusReceivedAtFactory, order.StatusUnknown, true},
		{"cancel from in processing", order.StatusInProcessing, order.StatusCancelled, order.StatusUnknown, false},
		{"hold from received", order.StatusReceived, order.StatusOnHold, order.StatusUnknown, false},
		{"hold while on hold", order.StatusOnHold, order.StatusOnHold, order.StatusReceived, true},
		{"resume to held status", order.StatusOnHold, order.StatusInProcessing, order.StatusInProcessing, false},
		{"resume to another status", order.StatusOnHold, order.StatusQCPackaging, order.StatusInProcessing, true},
		{"cancel while on hold", order.StatusOnHold, order.StatusCancelled, order.StatusReceived, false},
		{"leave completed", order.StatusCompleted, order.StatusCancelled, order.StatusUnknown, true},
		{"leave cancelled", order.StatusCancelled, order.StatusOnHold, order.StatusUnknown, true},
	}

	for _, tt := range tests {
		t.Run("should handle "+tt.name, func(t *testing.T) {
			err := tt.from.CanTransitionTo(tt.to, tt.held)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
		})
	}

	t.Run("should reject unknown targets as invalid values", func(t *testing.T) {
		err := order.StatusReceived.CanTransitionTo(order.StatusUnknown, order.StatusUnknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should round trip every status code", func(t *testing.T) {
		for s := order.StatusPending; s <= order.StatusOnHold; s++ {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown codes", func(t *testing.T) {
		_, err := order.ParseStatus("lost")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
