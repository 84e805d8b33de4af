package commands_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/defect"
	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/organization"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrganizationRepository struct{ mock.Mock }

func (m *MockOrganizationRepository) Add(ctx context.Context, org *organization.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Organization, error) {
	args := m.Called(ctx, id)
	org, _ := args.Get(0).(*organization.Organization)
	return org, args.Error(1)
}

type MockOutletRepository struct{ mock.Mock }

func (m *MockOutletRepository) Add(ctx context.Context, outlet *organization.Outlet) error {
	args := m.Called(ctx, outlet)
	return args.Error(0)
}
func (m *MockOutletRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Outlet, error) {
	args := m.Called(ctx, id)
	outlet, _ := args.Get(0).(*organization.Outlet)
	return outlet, args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, user *staff.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*staff.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*staff.User)
	return user, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetByItemID(ctx context.Context, itemID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, itemID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetByItemIDs(ctx context.Context, itemIDs []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, itemIDs)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockDispatchRepository struct{ mock.Mock }

func (m *MockDispatchRepository) Add(ctx context.Context, d *dispatch.Dispatch) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDispatchRepository) Update(ctx context.Context, d *dispatch.Dispatch) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDispatchRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*dispatch.Dispatch)
	return d, args.Error(1)
}
func (m *MockDispatchRepository) ActiveItemIDs(ctx context.Context, itemIDs []kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, itemIDs)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

type MockHandoverRepository struct{ mock.Mock }

func (m *MockHandoverRepository) Add(ctx context.Context, handovers ...*custody.Handover) error {
	args := m.Called(ctx, handovers)
	return args.Error(0)
}
func (m *MockHandoverRepository) LastForItem(ctx context.Context, itemID kernel.UUID) (*custody.Handover, error) {
	args := m.Called(ctx, itemID)
	h, _ := args.Get(0).(*custody.Handover)
	return h, args.Error(1)
}
func (m *MockHandoverRepository) LastForItems(
	ctx context.Context,
	itemIDs []kernel.UUID,
) (map[string]*custody.Handover, error) {
	args := m.Called(ctx, itemIDs)
	last, _ := args.Get(0).(map[string]*custody.Handover)
	return last, args.Error(1)
}
func (m *MockHandoverRepository) ListForItem(ctx context.Context, itemID kernel.UUID) ([]*custody.Handover, error) {
	args := m.Called(ctx, itemID)
	handovers, _ := args.Get(0).([]*custody.Handover)
	return handovers, args.Error(1)
}

func (m *MockHandoverRepository) ItemsHandedOverSince(ctx context.Context, since time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, since)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

type MockDefectRepository struct{ mock.Mock }

func (m *MockDefectRepository) Add(ctx context.Context, d *defect.Defect) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDefectRepository) Update(ctx context.Context, d *defect.Defect) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDefectRepository) Get(ctx context.Context, id kernel.UUID) (*defect.Defect, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*defect.Defect)
	return d, args.Error(1)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}
func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) OrganizationRepository() ports.OrganizationRepository {
	args := m.Called()
	return args.Get(0).(ports.OrganizationRepository)
}
func (m *MockUoW) OutletRepository() ports.OutletRepository {
	args := m.Called()
	return args.Get(0).(ports.OutletRepository)
}
func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) DispatchRepository() ports.DispatchRepository {
	args := m.Called()
	return args.Get(0).(ports.DispatchRepository)
}
func (m *MockUoW) HandoverRepository() ports.HandoverRepository {
	args := m.Called()
	return args.Get(0).(ports.HandoverRepository)
}
func (m *MockUoW) DefectRepository() ports.DefectRepository {
	args := m.Called()
	return args.Get(0).(ports.DefectRepository)
}

type MockOrganizationUoWFactory struct{ mock.Mock }

func (m *MockOrganizationUoWFactory) Create() commands.OrganizationUoW {
	args := m.Called()
	return args.Get(0).(commands.OrganizationUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockCustodyUoWFactory struct{ mock.Mock }

func (m *MockCustodyUoWFactory) Create() commands.CustodyUoW {
	args := m.Called()
	return args.Get(0).(commands.CustodyUoW)
}

type MockDefectUoWFactory struct{ mock.Mock }

func (m *MockDefectUoWFactory) Create() commands.DefectUoW {
	args := m.Called()
	return args.Get(0).(commands.DefectUoW)
}

var testNow = time.Date(2026, 4, 14, 8, 0, 0, 0, time.UTC)

func newActor(t *testing.T, org kernel.UUID, role staff.Role) staff.Actor {
	t.Helper()
	a, err := staff.NewActor(kernel.NewUUID(), &org, role)
	require.NoError(t, err)
	return a
}

func newSuperAdmin(t *testing.T) staff.Actor {
	t.Helper()
	a, err := staff.NewActor(kernel.NewUUID(), nil, staff.SuperAdmin)
	require.NoError(t, err)
	return a
}

func newOrganization(t *testing.T) *organization.Organization {
	t.Helper()
	org, err := organization.NewOrganization(kernel.NewUUID(), "Fresh Fold", "fresh-fold", "ops@freshfold.test", "", testNow)
	require.NoError(t, err)
	return org
}

func newOutlet(t *testing.T, org kernel.UUID) *organization.Outlet {
	t.Helper()
	outlet, err := organization.NewOutlet(kernel.NewUUID(), org, "Osu Branch", "OSU", "", "", "", nil)
	require.NoError(t, err)
	return outlet
}

// newOrder builds an order with itemCount items priced 10.00 each.
func newOrder(t *testing.T, org, outlet kernel.UUID, itemCount int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), org, outlet, newActor(t, org, staff.Attendant),
		nil, "B-12", "INV-12", 48, "", testNow)
	require.NoError(t, err)

	for i := 0; i < itemCount; i++ {
		_, err = o.AddItem(kernel.NewUUID(), "Shirt", 1, kernel.MustMoney("10.00"), nil, "", testNow)
		require.NoError(t, err)
	}
	o.PullEvents()
	return o
}

func itemIDsOf(o *order.Order) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.Items()))
	for _, item := range o.Items() {
		ids = append(ids, item.ID())
	}
	return ids
}
