package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrListOverdueOrdersQueryIsNotConstructed = errors.New(
	"ListOverdueOrdersQuery must be created via NewListOverdueOrdersQuery constructor",
)

// ListOverdueOrdersQuery lists open orders whose due time passed.
//
// An order is overdue when it is neither completed nor cancelled and its
// due_at lies before now. Orders without a turnaround never become overdue.
//
// A nil organizationID with a super admin actor lists every tenant; the
// overdue sweep job runs that way.
type ListOverdueOrdersQuery struct {
	actor          staff.Actor
	organizationID *kernel.UUID
	now            time.Time

	guard guard.ConstructorGuard
}

// NewListOverdueOrdersQuery builds the query. organizationID may be nil only
// for super admins.
func NewListOverdueOrdersQuery(
	actor staff.Actor,
	organizationID *kernel.UUID,
	now time.Time,
) (ListOverdueOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOverdueOrdersQuery{}, err
	}
	if organizationID != nil {
		if err := organizationID.Validate(); err != nil {
			return ListOverdueOrdersQuery{}, err
		}
	}
	if now.IsZero() {
		return ListOverdueOrdersQuery{}, ErrNowIsRequired
	}

	return ListOverdueOrdersQuery{
		actor:          actor,
		organizationID: organizationID,
		now:            now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q ListOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOverdueOrdersQueryIsNotConstructed)
}

func (q ListOverdueOrdersQuery) Actor() staff.Actor {
	return q.actor
}

func (q ListOverdueOrdersQuery) OrganizationID() *kernel.UUID {
	return q.organizationID
}

func (q ListOverdueOrdersQuery) Now() time.Time {
	return q.now
}

type OverdueOrderView struct {
	ID                kernel.UUID
	OrganizationID    kernel.UUID
	OutletID          kernel.UUID
	BagNumber         string
	InvoiceNumber     string
	Status            order.Status
	DueAt             time.Time
	Overdue           time.Duration
	AmountOutstanding kernel.Money
}
