package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrDispatchCommandIsNotConstructed = errors.New(
	"DispatchCommand must be created via NewDispatchCommand constructor",
)

// DispatchCommand identifies an existing dispatch and the actor changing it.
// It is shared by accept, start, complete and cancel.
type DispatchCommand struct { //nolint:recvcheck //using for validation
	actor      staff.Actor
	dispatchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDispatchCommand(actor staff.Actor, dispatchID kernel.UUID) (DispatchCommand, error) {
	if err := errors.Join(actor.Validate(), dispatchID.Validate()); err != nil {
		return DispatchCommand{}, err
	}

	return DispatchCommand{
		actor:      actor,
		dispatchID: dispatchID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchCommand) Validate() error {
	return c.guard.Validate(ErrDispatchCommandIsNotConstructed)
}

func (c DispatchCommand) Actor() staff.Actor {
	return c.actor
}

func (c DispatchCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}
