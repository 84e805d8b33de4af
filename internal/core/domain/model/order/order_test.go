package order_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newActor(t *testing.T, org *kernel.UUID, role staff.Role) staff.Actor {
	t.Helper()
	a, err := staff.NewActor(kernel.NewUUID(), org, role)
	require.NoError(t, err)
	return a
}

func newTestOrder(t *testing.T) (*order.Order, kernel.UUID) {
	t.Helper()
	org := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), org, kernel.NewUUID(), newActor(t, &org, staff.Attendant),
		nil, "B-100", "INV-100", 48, "", testNow)
	require.NoError(t, err)
	o.PullEvents()
	return o, org
}

func addItem(t *testing.T, o *order.Order, price string, quantity int) *order.Item {
	t.Helper()
	item, err := o.AddItem(kernel.NewUUID(), "Shirt", quantity, kernel.MustMoney(price), nil, "", testNow)
	require.NoError(t, err)
	return item
}

func moveItemToPickedUp(t *testing.T, o *order.Order, item *order.Item) {
	t.Helper()
	path := []order.Stage{
		order.StageAwaitingWash, order.StageInWashing, order.StageWashingComplete, order.StageAwaitingDry,
		order.StageInDrying, order.StageDryingComplete, order.StageAwaitingIron, order.StageInIroning,
		order.StageIroningComplete, order.StageAwaitingQC, order.StageInQC, order.StageQCPassed,
		order.StageAwaitingPackage, order.StagePackaged, order.StageAwaitingDispatchReturn,
		order.StageInTransitToOutlet, order.StageReceivedAtOutlet, order.StageReadyForPickup, order.StagePickedUp,
	}
	for _, stage := range path {
		require.NoError(t, o.MoveItemForCustody(item.ID(), stage, testNow))
	}
}

func TestNewOrder(t *testing.T) {
	org := kernel.NewUUID()
	outlet := kernel.NewUUID()

	t.Run("should create a received order for staff", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, org, outlet, newActor(t, &org, staff.Attendant), nil,
			" B-1 ", "INV-1", 48, "handle with care", testNow)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.StatusReceived, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, "B-1", o.BagNumber())
		assert.Nil(t, o.CustomerID())
		assert.Nil(t, o.CompletedAt())
		require.NotNil(t, o.DueAt())
		assert.Equal(t, testNow.Add(48*time.Hour), *o.DueAt())
		assert.Equal(t, int64(1), o.Version())
		assert.True(t, o.TotalAmount().IsZero())

		events := o.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventOrderCreated, events[0].EventName())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should start customer orders as pending for the customer", func(t *testing.T) {
		customer := newActor(t, nil, staff.Customer)

		o, err := order.NewOrder(kernel.NewUUID(), org, outlet, customer, nil, "B-2", "INV-2", 0, "", testNow)

		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, o.Status())
		require.NotNil(t, o.CustomerID())
		assert.True(t, o.CustomerID().IsEqual(customer.UserID()))
		assert.Nil(t, o.DueAt())
	})

	t.Run("should reject roles that cannot take orders", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), org, outlet, newActor(t, &org, staff.Washer), nil,
			"B-3", "INV-3", 0, "", testNow)
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("should reject staff of another organization", func(t *testing.T) {
		other := kernel.NewUUID()
		_, err := order.NewOrder(kernel.NewUUID(), org, outlet, newActor(t, &other, staff.Attendant), nil,
			"B-3", "INV-3", 0, "", testNow)
		require.ErrorIs(t, err, errs.ErrTenantMismatch)
	})

	t.Run("should require a bag number", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), org, outlet, newActor(t, &org, staff.Attendant), nil,
			" ", "INV-3", 0, "", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "bag_number")
	})

	t.Run("should accept an order without an invoice number", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), org, outlet, newActor(t, &org, staff.Attendant), nil,
			"B-5", " ", 0, "", testNow)

		require.NoError(t, err)
		assert.Empty(t, o.InvoiceNumber())
	})

	t.Run("should reject a negative turnaround", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), org, outlet, newActor(t, &org, staff.Attendant), nil,
			"B-4", "INV-4", -1, "", testNow)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("should price items and recompute the total", func(t *testing.T) {
		o, org := newTestOrder(t)
		weight := decimal.RequireFromString("1.5")

		item, err := o.AddItem(kernel.NewUUID(), "Duvet", 2, kernel.MustMoney("12.50"), &weight, "", testNow)

		require.NoError(t, err)
		assert.Equal(t, order.StageReceived, item.Stage())
		assert.True(t, item.OrganizationID().IsEqual(org))
		assert.True(t, item.Amount().Equal(kernel.MustMoney("25.00")))
		addItem(t, o, "5.00", 1)
		assert.True(t, o.TotalAmount().Equal(kernel.MustMoney("30.00")))
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should reject a zero quantity", func(t *testing.T) {
		o, _ := newTestOrder(t)

		_, err := o.AddItem(kernel.NewUUID(), "Shirt", 0, kernel.MustMoney("1.00"), nil, "", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Empty(t, o.Items())
	})

	t.Run("should reject a duplicate item id", func(t *testing.T) {
		o, _ := newTestOrder(t)
		item := addItem(t, o, "1.00", 1)

		_, err := o.AddItem(item.ID(), "Shirt", 1, kernel.MustMoney("1.00"), nil, "", testNow)

		require.ErrorIs(t, err, errs.ErrAlreadyExists)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("should move forward and record the change", func(t *testing.T) {
		o, org := newTestOrder(t)
		attendant := newActor(t, &org, staff.Attendant)

		require.NoError(t, o.TransitionTo(order.StatusAwaitingPickup, attendant, testNow.Add(time.Minute)))

		assert.Equal(t, order.StatusAwaitingPickup, o.Status())
		assert.Equal(t, testNow.Add(time.Minute), o.UpdatedAt())
		events := o.PullEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(order.StatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "received", changed.From)
		assert.Equal(t, "awaiting_pickup", changed.To)
		assert.Equal(t, attendant.UserID().String(), changed.ActorID)
		assert.Equal(t, org.String(), changed.Organization())
	})

	t.Run("should reject skipping statuses", func(t *testing.T) {
		o, org := newTestOrder(t)

		err := o.TransitionTo(order.StatusInProcessing, newActor(t, &org, staff.OrgAdmin), testNow)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusReceived, o.Status())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should deny roles without order management", func(t *testing.T) {
		o, org := newTestOrder(t)
		err := o.TransitionTo(order.StatusAwaitingPickup, newActor(t, &org, staff.Washer), testNow)
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("should deny staff of another organization", func(t *testing.T) {
		o, _ := newTestOrder(t)
		other := kernel.NewUUID()
		err := o.TransitionTo(order.StatusAwaitingPickup, newActor(t, &other, staff.OrgAdmin), testNow)
		require.ErrorIs(t, err, errs.ErrTenantMismatch)
	})

	t.Run("should resume a held order to the held status only", func(t *testing.T) {
		o, org := newTestOrder(t)
		admin := newActor(t, &org, staff.OrgAdmin)

		require.NoError(t, o.TransitionTo(order.StatusOnHold, admin, testNow))
		assert.Equal(t, order.StatusReceived, o.HeldStatus())

		require.ErrorIs(t, o.TransitionTo(order.StatusAwaitingPickup, admin, testNow), errs.ErrInvalidTransition)
		require.NoError(t, o.TransitionTo(order.StatusReceived, admin, testNow))
		assert.Equal(t, order.StatusReceived, o.Status())
		assert.Equal(t, order.StatusUnknown, o.HeldStatus())
	})

	t.Run("should complete only when every item left the workflow", func(t *testing.T) {
		o, org := newTestOrder(t)
		admin := newActor(t, &org, staff.OrgAdmin)
		done := addItem(t, o, "3.00", 1)
		broken := addItem(t, o, "4.00", 1)

		for s, ok := o.Status().Next(); ok && s != order.StatusCompleted; s, ok = s.Next() {
			require.NoError(t, o.TransitionTo(s, admin, testNow))
		}
		moveItemToPickedUp(t, o, done)

		err := o.TransitionTo(order.StatusCompleted, admin, testNow)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, o.CompletedAt())

		require.NoError(t, o.AdvanceItem(broken.ID(), order.StageDamaged, newActor(t, &org, staff.Attendant), testNow))
		completedAt := testNow.Add(time.Hour)
		require.NoError(t, o.TransitionTo(order.StatusCompleted, admin, completedAt))
		assert.Equal(t, order.StatusCompleted, o.Status())
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, completedAt, *o.CompletedAt())
	})

	t.Run("should freeze a cancelled order", func(t *testing.T) {
		o, org := newTestOrder(t)
		admin := newActor(t, &org, staff.OrgAdmin)
		item := addItem(t, o, "3.00", 1)

		require.NoError(t, o.TransitionTo(order.StatusCancelled, admin, testNow))

		require.ErrorIs(t, o.TransitionTo(order.StatusOnHold, admin, testNow), errs.ErrInvalidTransition)
		require.ErrorIs(t, o.AdvanceItem(item.ID(), order.StageAwaitingWash, admin, testNow), errs.ErrValueIsInvalid)
		_, err := o.AddItem(kernel.NewUUID(), "Shirt", 1, kernel.MustMoney("1.00"), nil, "", testNow)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_AdvanceItem(t *testing.T) {
	t.Run("should let the wash team move items into washing", func(t *testing.T) {
		o, org := newTestOrder(t)
		item := addItem(t, o, "3.00", 1)
		washer := newActor(t, &org, staff.Washer)

		require.NoError(t, o.AdvanceItem(item.ID(), order.StageAwaitingWash, washer, testNow.Add(time.Minute)))

		assert.Equal(t, order.StageAwaitingWash, item.Stage())
		assert.Equal(t, testNow.Add(time.Minute), item.StageChangedAt())
		events := o.PullEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(order.ItemStageChangedEvent)
		require.True(t, ok)
		assert.Equal(t, item.ID().String(), changed.ItemID)
		assert.Equal(t, "received", changed.From)
		assert.Equal(t, "awaiting_wash", changed.To)
	})

	t.Run("should deny roles outside the target team", func(t *testing.T) {
		o, org := newTestOrder(t)
		item := addItem(t, o, "3.00", 1)

		err := o.AdvanceItem(item.ID(), order.StageAwaitingWash, newActor(t, &org, staff.Ironer), testNow)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Equal(t, order.StageReceived, item.Stage())
	})

	t.Run("should reject moves outside the adjacency table", func(t *testing.T) {
		o, org := newTestOrder(t)
		item := addItem(t, o, "3.00", 1)

		err := o.AdvanceItem(item.ID(), order.StageInWashing, newActor(t, &org, staff.Washer), testNow)

		require.ErrorIs(t, err, errs.ErrInvalidStageTransition)
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should reject ironing an item that is still washing", func(t *testing.T) {
		o, org := newTestOrder(t)
		item := addItem(t, o, "3.00", 1)
		require.NoError(t, o.AdvanceItem(item.ID(), order.StageAwaitingWash, newActor(t, &org, staff.Washer), testNow))
		require.NoError(t, o.AdvanceItem(item.ID(), order.StageInWashing, newActor(t, &org, staff.Washer), testNow))
		o.PullEvents()

		err := o.AdvanceItem(item.ID(), order.StageInIroning, newActor(t, &org, staff.Ironer), testNow)

		require.ErrorIs(t, err, errs.ErrInvalidStageTransition)
		assert.Equal(t, order.StageInWashing, item.Stage())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should report unknown items", func(t *testing.T) {
		o, org := newTestOrder(t)
		err := o.AdvanceItem(kernel.NewUUID(), order.StageAwaitingWash, newActor(t, &org, staff.Washer), testNow)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrder_UpdateItem(t *testing.T) {
	t.Run("should reprice an item in any stage", func(t *testing.T) {
		o, org := newTestOrder(t)
		admin := newActor(t, &org, staff.OrgAdmin)
		item := addItem(t, o, "3.00", 1)
		require.NoError(t, o.MoveItemForCustody(item.ID(), order.StageAwaitingWash, testNow))

		err := o.UpdateItem(item.ID(), "Silk shirt", 3, kernel.MustMoney("4.00"), nil, "", admin, testNow)

		require.NoError(t, err)
		assert.Equal(t, "Silk shirt", item.Description())
		assert.True(t, item.Amount().Equal(kernel.MustMoney("12.00")))
		assert.True(t, o.TotalAmount().Equal(kernel.MustMoney("12.00")))
	})

	t.Run("should keep the item when the total would drop below the amount paid", func(t *testing.T) {
		o, org := newTestOrder(t)
		admin := newActor(t, &org, staff.OrgAdmin)
		item := addItem(t, o, "10.00", 1)
		_, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodCash, Amount: kernel.MustMoney("8.00"),
		}, admin, testNow)
		require.NoError(t, err)

		err = o.UpdateItem(item.ID(), "Shirt", 1, kernel.MustMoney("5.00"), nil, "", admin, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, item.Amount().Equal(kernel.MustMoney("10.00")))
		assert.True(t, o.TotalAmount().Equal(kernel.MustMoney("10.00")))
	})
}

func TestOrder_ApplyDiscount(t *testing.T) {
	t.Run("should reduce the total", func(t *testing.T) {
		o, org := newTestOrder(t)
		addItem(t, o, "20.00", 1)

		require.NoError(t, o.ApplyDiscount(kernel.MustMoney("5.00"), newActor(t, &org, staff.Attendant), testNow))

		assert.True(t, o.Subtotal().Equal(kernel.MustMoney("20.00")))
		assert.True(t, o.TotalAmount().Equal(kernel.MustMoney("15.00")))
	})

	t.Run("should reject a discount above the subtotal", func(t *testing.T) {
		o, org := newTestOrder(t)
		addItem(t, o, "20.00", 1)

		err := o.ApplyDiscount(kernel.MustMoney("20.01"), newActor(t, &org, staff.Attendant), testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, o.DiscountAmount().IsZero())
	})

	t.Run("should mark the order paid when the discount covers the rest", func(t *testing.T) {
		o, org := newTestOrder(t)
		attendant := newActor(t, &org, staff.Attendant)
		addItem(t, o, "20.00", 1)
		_, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodCash, Amount: kernel.MustMoney("15.00"),
		}, attendant, testNow)
		require.NoError(t, err)
		require.Equal(t, order.PaymentPartial, o.PaymentStatus())

		require.NoError(t, o.ApplyDiscount(kernel.MustMoney("5.00"), attendant, testNow))

		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.True(t, o.AmountOutstanding().IsZero())
	})
}

func TestOrder_RecordPayment(t *testing.T) {
	t.Run("should move from partial to paid", func(t *testing.T) {
		o, org := newTestOrder(t)
		attendant := newActor(t, &org, staff.Attendant)
		addItem(t, o, "50.00", 1)

		_, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodCash, Amount: kernel.MustMoney("20.00"),
		}, attendant, testNow)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentPartial, o.PaymentStatus())
		assert.True(t, o.AmountOutstanding().Equal(kernel.MustMoney("30.00")))

		p, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodMobileMoney, Amount: kernel.MustMoney("30.00"),
			TransactionID: "MM-1", Network: order.NetworkMTN,
		}, attendant, testNow)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.True(t, o.AmountPaid().Equal(kernel.MustMoney("50.00")))
		assert.True(t, p.ChangeDue().IsZero())
		assert.Len(t, o.Payments(), 2)
		assert.Len(t, o.PullEvents(), 2)
	})

	t.Run("should reject overpayment without tolerance", func(t *testing.T) {
		o, org := newTestOrder(t)
		addItem(t, o, "10.00", 1)

		_, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodCash, Amount: kernel.MustMoney("10.01"),
		}, newActor(t, &org, staff.Attendant), testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, o.AmountPaid().IsZero())
		assert.Empty(t, o.Payments())
	})

	t.Run("should record change within the tolerance", func(t *testing.T) {
		o, org := newTestOrder(t)
		addItem(t, o, "18.00", 1)

		p, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodCash, Amount: kernel.MustMoney("20.00"),
			Tolerance: kernel.MustMoney("5.00"),
		}, newActor(t, &org, staff.Attendant), testNow)

		require.NoError(t, err)
		assert.True(t, p.Amount().Equal(kernel.MustMoney("20.00")))
		assert.True(t, p.Applied().Equal(kernel.MustMoney("18.00")))
		assert.True(t, p.ChangeDue().Equal(kernel.MustMoney("2.00")))
		assert.True(t, o.AmountPaid().Equal(kernel.MustMoney("18.00")))
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	})

	t.Run("should validate method specific details", func(t *testing.T) {
		o, org := newTestOrder(t)
		addItem(t, o, "10.00", 1)

		_, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodMobileMoney, Amount: kernel.MustMoney("10.00"),
		}, newActor(t, &org, staff.Attendant), testNow)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "transaction_id")
		assert.Contains(t, err.Error(), "mobile_network")
	})

	t.Run("should reject non positive amounts", func(t *testing.T) {
		o, org := newTestOrder(t)
		addItem(t, o, "10.00", 1)

		_, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodCash, Amount: kernel.ZeroMoney(),
		}, newActor(t, &org, staff.Attendant), testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject payments on cancelled orders", func(t *testing.T) {
		o, org := newTestOrder(t)
		admin := newActor(t, &org, staff.OrgAdmin)
		addItem(t, o, "10.00", 1)
		require.NoError(t, o.TransitionTo(order.StatusCancelled, admin, testNow))

		_, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodCash, Amount: kernel.MustMoney("1.00"),
		}, admin, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should deny roles that do not take money", func(t *testing.T) {
		o, org := newTestOrder(t)
		addItem(t, o, "10.00", 1)

		_, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodCash, Amount: kernel.MustMoney("1.00"),
		}, newActor(t, &org, staff.Washer), testNow)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})
}

func TestOrder_Refund(t *testing.T) {
	t.Run("should append a compensating entry", func(t *testing.T) {
		o, org := newTestOrder(t)
		admin := newActor(t, &org, staff.OrgAdmin)
		addItem(t, o, "10.00", 1)
		_, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodCash, Amount: kernel.MustMoney("6.00"),
		}, admin, testNow)
		require.NoError(t, err)
		require.NoError(t, o.TransitionTo(order.StatusCancelled, admin, testNow))

		refund, err := o.Refund(order.RefundRequest{ID: kernel.NewUUID(), Method: order.MethodCash}, admin, testNow)

		require.NoError(t, err)
		assert.Equal(t, order.KindRefund, refund.Kind())
		assert.True(t, refund.Amount().Equal(kernel.MustMoney("6.00").Neg()))
		assert.True(t, o.AmountPaid().IsZero())
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
		assert.Len(t, o.Payments(), 2)
	})

	t.Run("should refund cancelled orders only", func(t *testing.T) {
		o, org := newTestOrder(t)
		admin := newActor(t, &org, staff.OrgAdmin)
		addItem(t, o, "10.00", 1)
		_, err := o.RecordPayment(order.PaymentRequest{
			ID: kernel.NewUUID(), Method: order.MethodCash, Amount: kernel.MustMoney("6.00"),
		}, admin, testNow)
		require.NoError(t, err)

		_, err = o.Refund(order.RefundRequest{ID: kernel.NewUUID(), Method: order.MethodCash}, admin, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject refunding an unpaid order", func(t *testing.T) {
		o, org := newTestOrder(t)
		admin := newActor(t, &org, staff.OrgAdmin)
		require.NoError(t, o.TransitionTo(order.StatusCancelled, admin, testNow))

		_, err := o.Refund(order.RefundRequest{ID: kernel.NewUUID(), Method: order.MethodCash}, admin, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	org := kernel.NewUUID()
	orderID := kernel.NewUUID()

	snapshot := func(items []*order.Item, payments []*order.Payment, paid string) order.Snapshot {
		return order.Snapshot{
			ID:             orderID,
			OrganizationID: org,
			OutletID:       kernel.NewUUID(),
			CreatedBy:      kernel.NewUUID(),
			BagNumber:      "B-9",
			InvoiceNumber:  "INV-9",
			Status:         order.StatusInProcessing,
			PaymentStatus:  order.PaymentPartial,
			Items:          items,
			Payments:       payments,
			DiscountAmount: kernel.ZeroMoney(),
			AmountPaid:     kernel.MustMoney(paid),
			CreatedAt:      testNow,
			UpdatedAt:      testNow,
			Version:        4,
		}
	}
	restoreItem := func(t *testing.T, itemOrg kernel.UUID) *order.Item {
		item, err := order.RestoreItem(order.ItemSnapshot{
			ID: kernel.NewUUID(), OrganizationID: itemOrg, OrderID: orderID, Description: "Towel",
			Quantity: 2, UnitPrice: kernel.MustMoney("3.00"), Stage: order.StageInDrying,
			StageChangedAt: testNow, CreatedAt: testNow,
		})
		require.NoError(t, err)
		return item
	}
	restorePayment := func(t *testing.T, applied string) *order.Payment {
		p, err := order.RestorePayment(order.PaymentSnapshot{
			ID: kernel.NewUUID(), OrganizationID: org, OrderID: orderID, Kind: order.KindPayment,
			Method: order.MethodCash, Amount: kernel.MustMoney(applied), Applied: kernel.MustMoney(applied),
			ChangeDue: kernel.ZeroMoney(), ReceivedBy: kernel.NewUUID(), PaidAt: testNow,
		})
		require.NoError(t, err)
		return p
	}

	t.Run("should rebuild totals from items", func(t *testing.T) {
		o, err := order.RestoreOrder(snapshot(
			[]*order.Item{restoreItem(t, org)}, []*order.Payment{restorePayment(t, "2.00")}, "2.00"))

		require.NoError(t, err)
		assert.True(t, o.TotalAmount().Equal(kernel.MustMoney("6.00")))
		assert.True(t, o.AmountOutstanding().Equal(kernel.MustMoney("4.00")))
		assert.Equal(t, int64(4), o.Version())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should reject items of another organization", func(t *testing.T) {
		_, err := order.RestoreOrder(snapshot([]*order.Item{restoreItem(t, kernel.NewUUID())}, nil, "0"))
		require.ErrorIs(t, err, errs.ErrTenantMismatch)
	})

	t.Run("should reject a ledger that does not add up", func(t *testing.T) {
		_, err := order.RestoreOrder(snapshot(
			[]*order.Item{restoreItem(t, org)}, []*order.Payment{restorePayment(t, "2.00")}, "3.00"))
		require.ErrorIs(t, err, errs.ErrIntegrity)
	})

	t.Run("should reject completed_at outside the completed status", func(t *testing.T) {
		s := snapshot(nil, nil, "0")
		s.CompletedAt = &testNow
		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
