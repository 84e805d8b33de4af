package dispatchrepo_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres/dispatchrepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/pgtest"
	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type DispatchRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	tenant     pgtest.Tenant
	repository *dispatchrepo.GormDispatchRepository
	items      []kernel.UUID
	now        time.Time
}

func (suite *DispatchRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *DispatchRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.database.Truncate())
	suite.now = time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC)

	tenant, err := suite.database.SeedTenant(ctx, "fresh-fold")
	suite.Require().NoError(err)
	suite.tenant = tenant

	org := tenant.Organization.ID()
	o, err := order.NewOrder(kernel.NewUUID(), org, tenant.Outlet.ID(), suite.actor(staff.Attendant),
		nil, "B-1", "INV-1", 0, "", suite.now)
	suite.Require().NoError(err)
	suite.items = nil
	for i := 0; i < 3; i++ {
		item, err := o.AddItem(kernel.NewUUID(), "Shirt", 1, kernel.MustMoney("10.00"), nil, "", suite.now)
		suite.Require().NoError(err)
		suite.items = append(suite.items, item.ID())
	}
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.database.DB, nopTracker{}).Add(ctx, o))

	suite.repository = dispatchrepo.NewGormDispatchRepository(suite.database.DB, nopTracker{})
}

func (suite *DispatchRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestAdd_ThenGet_KeepsEndpointsAndItemOrder() {
	ctx := context.Background()
	d := suite.newToFactory(suite.items[2], suite.items[0])

	suite.Require().NoError(suite.repository.Add(ctx, d))

	loaded, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(dispatch.StatusPending, loaded.Status())
	suite.Equal(dispatch.ToFactory, loaded.Direction())
	suite.True(loaded.Destination().IsFactory())
	suite.True(loaded.OutletID().IsEqual(suite.tenant.Outlet.ID()))
	suite.Require().Len(loaded.ItemIDs(), 2)
	suite.True(loaded.ItemIDs()[0].IsEqual(suite.items[2]))
	suite.True(loaded.ItemIDs()[1].IsEqual(suite.items[0]))
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestAdd_ItemInAnotherActiveDispatch_Invalid() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newToFactory(suite.items[0], suite.items[1])))

	err := suite.repository.Add(ctx, suite.newToFactory(suite.items[1], suite.items[2]))

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.Contains(err.Error(), "items")
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestUpdate_TerminalStatusReleasesItems() {
	ctx := context.Background()
	d := suite.newToFactory(suite.items[0])
	suite.Require().NoError(suite.repository.Add(ctx, d))

	active, err := suite.repository.ActiveItemIDs(ctx, suite.items)
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.True(active[0].IsEqual(suite.items[0]))

	suite.Require().NoError(d.Cancel(suite.actor(staff.Attendant), suite.now))
	suite.Require().NoError(suite.repository.Update(ctx, d))
	suite.Equal(int64(2), d.Version())

	active, err = suite.repository.ActiveItemIDs(ctx, suite.items)
	suite.Require().NoError(err)
	suite.Empty(active)

	suite.NoError(suite.repository.Add(ctx, suite.newToFactory(suite.items[0])))
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycle() {
	ctx := context.Background()
	d := suite.newToFactory(suite.items[0])
	suite.Require().NoError(suite.repository.Add(ctx, d))

	dispatcher := suite.actor(staff.Dispatcher)
	suite.Require().NoError(d.Accept(dispatcher, suite.now))
	suite.Require().NoError(suite.repository.Update(ctx, d))

	loaded, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(dispatch.StatusAccepted, loaded.Status())
	suite.Require().NotNil(loaded.DispatcherID())
	suite.True(loaded.DispatcherID().IsEqual(dispatcher.UserID()))
	suite.Require().NotNil(loaded.AcceptedAt())
	suite.True(loaded.AcceptedAt().Equal(suite.now))
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ConcurrencyConflict() {
	ctx := context.Background()
	d := suite.newToFactory(suite.items[0])
	suite.Require().NoError(suite.repository.Add(ctx, d))

	first, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Accept(suite.actor(staff.Dispatcher), suite.now))
	suite.Require().NoError(second.Accept(suite.actor(staff.Dispatcher), suite.now))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestGet_Unknown_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DispatchRepositoryIntegrationTestSuite) newToFactory(itemIDs ...kernel.UUID) *dispatch.Dispatch {
	source, err := dispatch.AtOutlet(suite.tenant.Outlet.ID())
	suite.Require().NoError(err)
	d, err := dispatch.NewDispatch(kernel.NewUUID(), suite.tenant.Organization.ID(), source, dispatch.Factory(),
		itemIDs, suite.actor(staff.Attendant), suite.now)
	suite.Require().NoError(err)
	return d
}

func (suite *DispatchRepositoryIntegrationTestSuite) actor(role staff.Role) staff.Actor {
	org := suite.tenant.Organization.ID()
	a, err := staff.NewActor(kernel.NewUUID(), &org, role)
	suite.Require().NoError(err)
	return a
}

func TestDispatchRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DispatchRepositoryIntegrationTestSuite))
}
