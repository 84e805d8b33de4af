package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrListActiveDispatchesQueryIsNotConstructed = errors.New(
	"ListActiveDispatchesQuery must be created via NewListActiveDispatchesQuery constructor",
)

// ListActiveDispatchesQuery lists the pending, accepted and in transit
// dispatches of an organization, oldest request first. It is the work queue
// of the dispatchers.
type ListActiveDispatchesQuery struct {
	actor          staff.Actor
	organizationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListActiveDispatchesQuery(actor staff.Actor, organizationID kernel.UUID) (ListActiveDispatchesQuery, error) {
	if err := errors.Join(actor.Validate(), organizationID.Validate()); err != nil {
		return ListActiveDispatchesQuery{}, err
	}

	return ListActiveDispatchesQuery{
		actor:          actor,
		organizationID: organizationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q ListActiveDispatchesQuery) Validate() error {
	return q.guard.Validate(ErrListActiveDispatchesQueryIsNotConstructed)
}

func (q ListActiveDispatchesQuery) Actor() staff.Actor {
	return q.actor
}

func (q ListActiveDispatchesQuery) OrganizationID() kernel.UUID {
	return q.organizationID
}

type DispatchView struct {
	ID           kernel.UUID
	Source       dispatch.Endpoint
	Destination  dispatch.Endpoint
	Status       dispatch.Status
	RequestedBy  kernel.UUID
	DispatcherID *kernel.UUID
	ItemIDs      []kernel.UUID
	CreatedAt    time.Time
	AcceptedAt   *time.Time
	StartedAt    *time.Time
	Version      int64
}
