package queries_test

import (
	"testing"
	"time"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attendant(t *testing.T) staff.Actor {
	t.Helper()
	org := kernel.NewUUID()
	actor, err := staff.NewActor(kernel.NewUUID(), &org, staff.Attendant)
	require.NoError(t, err)
	return actor
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name     string
		validate func() error
		want     error
	}{
		{"get order", queries.GetOrderQuery{}.Validate, queries.ErrGetOrderQueryIsNotConstructed},
		{"item history", queries.GetItemHistoryQuery{}.Validate, queries.ErrGetItemHistoryQueryIsNotConstructed},
		{"active dispatches", queries.ListActiveDispatchesQuery{}.Validate, queries.ErrListActiveDispatchesQueryIsNotConstructed},
		{"unresolved defects", queries.ListUnresolvedDefectsQuery{}.Validate, queries.ErrListUnresolvedDefectsQueryIsNotConstructed},
		{"overdue orders", queries.ListOverdueOrdersQuery{}.Validate, queries.ErrListOverdueOrdersQueryIsNotConstructed},
		{"resolve actor", queries.ResolveActorQuery{}.Validate, queries.ErrResolveActorQueryIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.validate(), tt.want)
		})
	}
}

func TestNewGetOrderQuery_Valid(t *testing.T) {
	actor := attendant(t)
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderQuery(actor, orderID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, orderID, query.OrderID())
	assert.Equal(t, actor.UserID(), query.Actor().UserID())
}

func TestNewGetOrderQuery_RejectsMissingActor(t *testing.T) {
	_, err := queries.NewGetOrderQuery(staff.Actor{}, kernel.NewUUID())

	require.ErrorIs(t, err, staff.ErrActorIsNotConstructed)
}

func TestNewGetItemHistoryQuery_RejectsZeroItem(t *testing.T) {
	_, err := queries.NewGetItemHistoryQuery(attendant(t), kernel.UUID{})

	require.Error(t, err)
}

func TestNewListUnresolvedDefectsQuery_OutletIsOptional(t *testing.T) {
	actor := attendant(t)
	org := *actor.OrganizationID()

	all, err := queries.NewListUnresolvedDefectsQuery(actor, org, nil)
	require.NoError(t, err)
	assert.Nil(t, all.OutletID())

	outlet := kernel.NewUUID()
	one, err := queries.NewListUnresolvedDefectsQuery(actor, org, &outlet)
	require.NoError(t, err)
	assert.Equal(t, &outlet, one.OutletID())
}

func TestNewListOverdueOrdersQuery_RequiresNow(t *testing.T) {
	actor := attendant(t)

	_, err := queries.NewListOverdueOrdersQuery(actor, actor.OrganizationID(), time.Time{})

	require.ErrorIs(t, err, queries.ErrNowIsRequired)
	assert.True(t, errs.IsValidation(err))
}

func TestNewResolveActorQuery_RejectsZeroUser(t *testing.T) {
	_, err := queries.NewResolveActorQuery(kernel.UUID{})

	require.Error(t, err)
}
