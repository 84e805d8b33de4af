package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrAdvanceItemCommandIsNotConstructed = errors.New(
	"AdvanceItemCommand must be created via NewAdvanceItemCommand constructor",
)

// AdvanceItemCommand moves one item to the next workflow stage on behalf of
// a staff member.
type AdvanceItemCommand struct { //nolint:recvcheck //using for validation
	actor  staff.Actor
	itemID kernel.UUID
	target order.Stage

	guard guard.ConstructorGuard
}

func NewAdvanceItemCommand(actor staff.Actor, itemID kernel.UUID, target order.Stage) (AdvanceItemCommand, error) {
	if err := errors.Join(actor.Validate(), itemID.Validate(), target.Validate()); err != nil {
		return AdvanceItemCommand{}, err
	}

	return AdvanceItemCommand{
		actor:  actor,
		itemID: itemID,
		target: target,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceItemCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceItemCommandIsNotConstructed)
}

func (c AdvanceItemCommand) Actor() staff.Actor {
	return c.actor
}

func (c AdvanceItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c AdvanceItemCommand) Target() order.Stage {
	return c.target
}
