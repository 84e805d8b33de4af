package commands

import (
	"errors"

	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrCreateDispatchCommandIsNotConstructed = errors.New(
	"CreateDispatchCommand must be created via NewCreateDispatchCommand constructor",
)

// CreateDispatchCommand requests a transport of items between an outlet and
// the factory. A nil outlet id stands for the factory.
//
// Example:
//
//	// outlet -> factory
//	cmd, err := NewCreateDispatchCommand(actor, kernel.NewUUID(), orgID, &outletID, nil, itemIDs)
type CreateDispatchCommand struct { //nolint:recvcheck //using for validation
	actor          staff.Actor
	dispatchID     kernel.UUID
	organizationID kernel.UUID
	source         dispatch.Endpoint
	destination    dispatch.Endpoint
	itemIDs        []kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateDispatchCommand(
	actor staff.Actor,
	dispatchID, organizationID kernel.UUID,
	sourceOutletID, destinationOutletID *kernel.UUID,
	itemIDs []kernel.UUID,
) (CreateDispatchCommand, error) {
	source, sourceErr := dispatch.EndpointFromOutlet(sourceOutletID)
	destination, destinationErr := dispatch.EndpointFromOutlet(destinationOutletID)

	if err := errors.Join(
		actor.Validate(),
		dispatchID.Validate(),
		organizationID.Validate(),
		sourceErr,
		destinationErr,
	); err != nil {
		return CreateDispatchCommand{}, err
	}

	return CreateDispatchCommand{
		actor:          actor,
		dispatchID:     dispatchID,
		organizationID: organizationID,
		source:         source,
		destination:    destination,
		itemIDs:        append(make([]kernel.UUID, 0, len(itemIDs)), itemIDs...),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDispatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateDispatchCommandIsNotConstructed)
}

func (c CreateDispatchCommand) Actor() staff.Actor {
	return c.actor
}

func (c CreateDispatchCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}

func (c CreateDispatchCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

func (c CreateDispatchCommand) Source() dispatch.Endpoint {
	return c.source
}

func (c CreateDispatchCommand) Destination() dispatch.Endpoint {
	return c.destination
}

func (c CreateDispatchCommand) ItemIDs() []kernel.UUID {
	return append(make([]kernel.UUID, 0, len(c.itemIDs)), c.itemIDs...)
}
