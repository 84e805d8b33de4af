package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/pgtest"
	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/ddd"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...ddd.DomainEvent) {
	m.Called(ctx, events)
}

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a real
// PostgreSQL with the production schema.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	tenant    pgtest.Tenant
	publisher *MockEventPublisher
	factory   ports.UnitOfWorkFactory
	now       time.Time
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	tenant, err := suite.database.SeedTenant(context.Background(), "fresh-fold")
	suite.Require().NoError(err)
	suite.tenant = tenant

	suite.publisher = new(MockEventPublisher)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB, suite.publisher)
	suite.now = time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DispatchRepository())
	suite.NotNil(uow2.HandoverRepository())
	suite.NotNil(uow2.DefectRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Error(uow.Commit(ctx))
	suite.Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAndPublishesEvents() {
	ctx := context.Background()
	o := suite.newOrder("B-1")

	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []ddd.DomainEvent) bool {
		return len(events) == 1 && events[0].EventName() == order.EventStatusChanged
	})).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(o.TransitionTo(order.StatusAwaitingPickup, suite.actor(staff.Attendant), suite.now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusAwaitingPickup, loaded.Status())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndEvents() {
	ctx := context.Background()
	o := suite.newOrder("B-1")
	suite.Require().NoError(o.TransitionTo(order.StatusAwaitingPickup, suite.actor(staff.Attendant), suite.now))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutEvents_DoesNotPublish() {
	ctx := context.Background()
	o := suite.newOrder("B-1")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentItemAdvance_OneWins() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Maybe()

	o := suite.newOrder("B-1")
	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	suite.Require().NoError(setup.Commit(ctx))
	itemID := o.Items()[0].ID()

	first := suite.factory.Create()
	second := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))
	defer func() { _ = second.Rollback(ctx) }()

	a, err := first.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	b, err := second.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	washer := suite.actor(staff.Washer)
	suite.Require().NoError(a.AdvanceItem(itemID, order.StageAwaitingWash, washer, suite.now))
	suite.Require().NoError(b.AdvanceItem(itemID, order.StageAwaitingWash, washer, suite.now))

	suite.Require().NoError(first.OrderRepository().Update(ctx, a))
	suite.Require().NoError(first.Commit(ctx))

	err = second.OrderRepository().Update(ctx, b)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDispatchAndOrders_CommitTogether() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Maybe()

	o := suite.newOrder("B-1")
	source, err := dispatch.AtOutlet(suite.tenant.Outlet.ID())
	suite.Require().NoError(err)
	d, err := dispatch.NewDispatch(kernel.NewUUID(), suite.tenant.Organization.ID(), source, dispatch.Factory(),
		[]kernel.UUID{o.Items()[0].ID()}, suite.actor(staff.Attendant), suite.now)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	locked, err := uow.OrderRepository().GetByItemIDs(ctx, d.ItemIDs())
	suite.Require().NoError(err)
	suite.Require().Len(locked, 1)

	suite.Require().NoError(uow.DispatchRepository().Add(ctx, d))
	suite.Require().NoError(uow.Commit(ctx))

	active, err := suite.factory.Create().DispatchRepository().ActiveItemIDs(ctx, d.ItemIDs())
	suite.Require().NoError(err)
	suite.Len(active, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(bag string) *order.Order {
	org := suite.tenant.Organization.ID()
	o, err := order.NewOrder(kernel.NewUUID(), org, suite.tenant.Outlet.ID(), suite.actor(staff.Attendant),
		nil, bag, "INV-"+bag, 24, "", suite.now)
	suite.Require().NoError(err)
	_, err = o.AddItem(kernel.NewUUID(), "Trousers", 2, kernel.MustMoney("15.00"), nil, "", suite.now)
	suite.Require().NoError(err)
	o.PullEvents()
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) actor(role staff.Role) staff.Actor {
	org := suite.tenant.Organization.ID()
	a, err := staff.NewActor(kernel.NewUUID(), &org, role)
	suite.Require().NoError(err)
	return a
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
