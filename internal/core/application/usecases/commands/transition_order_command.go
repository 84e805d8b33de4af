package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order to another lifecycle status,
// including putting it on hold, resuming it and cancelling it.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	actor   staff.Actor
	orderID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(actor staff.Actor, orderID kernel.UUID, target order.Status) (TransitionOrderCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), target.Validate()); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		actor:   actor,
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) Actor() staff.Actor {
	return c.actor
}

func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}
