package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateItemCommandIsNotConstructed = errors.New(
	"UpdateItemCommand must be created via NewUpdateItemCommand constructor",
)

// ItemChanges replaces the editable fields of an item.
type ItemChanges struct {
	Description string
	Quantity    int
	UnitPrice   kernel.Money
	WeightKg    *decimal.Decimal
	Notes       string
}

// UpdateItemCommand corrects an item's description or pricing. Order totals
// follow.
type UpdateItemCommand struct { //nolint:recvcheck //using for validation
	actor   staff.Actor
	itemID  kernel.UUID
	changes ItemChanges

	guard guard.ConstructorGuard
}

func NewUpdateItemCommand(actor staff.Actor, itemID kernel.UUID, changes ItemChanges) (UpdateItemCommand, error) {
	if err := errors.Join(actor.Validate(), itemID.Validate()); err != nil {
		return UpdateItemCommand{}, err
	}

	return UpdateItemCommand{
		actor:   actor,
		itemID:  itemID,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemCommandIsNotConstructed)
}

func (c UpdateItemCommand) Actor() staff.Actor {
	return c.actor
}

func (c UpdateItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c UpdateItemCommand) Changes() ItemChanges {
	return c.changes
}
