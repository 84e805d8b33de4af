package services_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/organization"
	"laundry/internal/core/domain/model/staff"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

type fixture struct {
	org    kernel.UUID
	outlet *organization.Outlet
	order  *order.Order
	items  []*order.Item
}

func newFixture(t *testing.T, itemCount int) fixture {
	t.Helper()
	org := kernel.NewUUID()
	outlet, err := organization.NewOutlet(kernel.NewUUID(), org, "Osu Branch", "OSU", "", "", "", nil)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), org, outlet.ID(), newActor(t, org, staff.Attendant),
		nil, "B-7", "INV-7", 24, "", testNow)
	require.NoError(t, err)

	items := make([]*order.Item, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		item, err := o.AddItem(kernel.NewUUID(), "Trousers", 1, kernel.MustMoney("6.00"), nil, "", testNow)
		require.NoError(t, err)
		items = append(items, item)
	}
	o.PullEvents()

	return fixture{org: org, outlet: outlet, order: o, items: items}
}

func (f fixture) itemIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(f.items))
	for _, item := range f.items {
		ids = append(ids, item.ID())
	}
	return ids
}

func newActor(t *testing.T, org kernel.UUID, role staff.Role) staff.Actor {
	t.Helper()
	a, err := staff.NewActor(kernel.NewUUID(), &org, role)
	require.NoError(t, err)
	return a
}

func moveItem(t *testing.T, o *order.Order, item *order.Item, stages ...order.Stage) {
	t.Helper()
	for _, stage := range stages {
		require.NoError(t, o.MoveItemForCustody(item.ID(), stage, testNow))
	}
}
