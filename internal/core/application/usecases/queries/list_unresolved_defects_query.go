package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrListUnresolvedDefectsQueryIsNotConstructed = errors.New(
	"ListUnresolvedDefectsQuery must be created via NewListUnresolvedDefectsQuery constructor",
)

// ListUnresolvedDefectsQuery lists the open defect reports of an
// organization, optionally narrowed to one outlet.
type ListUnresolvedDefectsQuery struct {
	actor          staff.Actor
	organizationID kernel.UUID
	outletID       *kernel.UUID

	guard guard.ConstructorGuard
}

// NewListUnresolvedDefectsQuery builds the query. outletID may be nil.
func NewListUnresolvedDefectsQuery(
	actor staff.Actor,
	organizationID kernel.UUID,
	outletID *kernel.UUID,
) (ListUnresolvedDefectsQuery, error) {
	if err := errors.Join(actor.Validate(), organizationID.Validate()); err != nil {
		return ListUnresolvedDefectsQuery{}, err
	}
	if outletID != nil {
		if err := outletID.Validate(); err != nil {
			return ListUnresolvedDefectsQuery{}, err
		}
	}

	return ListUnresolvedDefectsQuery{
		actor:          actor,
		organizationID: organizationID,
		outletID:       outletID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q ListUnresolvedDefectsQuery) Validate() error {
	return q.guard.Validate(ErrListUnresolvedDefectsQueryIsNotConstructed)
}

func (q ListUnresolvedDefectsQuery) Actor() staff.Actor {
	return q.actor
}

func (q ListUnresolvedDefectsQuery) OrganizationID() kernel.UUID {
	return q.organizationID
}

func (q ListUnresolvedDefectsQuery) OutletID() *kernel.UUID {
	return q.outletID
}
