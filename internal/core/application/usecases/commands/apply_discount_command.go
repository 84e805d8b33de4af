package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrApplyDiscountCommandIsNotConstructed = errors.New(
	"ApplyDiscountCommand must be created via NewApplyDiscountCommand constructor",
)

// ApplyDiscountCommand replaces the discount of an order.
type ApplyDiscountCommand struct { //nolint:recvcheck //using for validation
	actor    staff.Actor
	orderID  kernel.UUID
	discount kernel.Money

	guard guard.ConstructorGuard
}

func NewApplyDiscountCommand(actor staff.Actor, orderID kernel.UUID, discount kernel.Money) (ApplyDiscountCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return ApplyDiscountCommand{}, err
	}

	return ApplyDiscountCommand{
		actor:    actor,
		orderID:  orderID,
		discount: discount,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyDiscountCommand) Validate() error {
	return c.guard.Validate(ErrApplyDiscountCommandIsNotConstructed)
}

func (c ApplyDiscountCommand) Actor() staff.Actor {
	return c.actor
}

func (c ApplyDiscountCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ApplyDiscountCommand) Discount() kernel.Money {
	return c.discount
}
