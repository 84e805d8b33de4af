package commands

import (
	"context"
)

type UpdateItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateItemCommandHandler(uowFactory OrderUoWFactory) UpdateItemCommandHandler {
	return UpdateItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle rewrites the item and lets the aggregate recompute amount, subtotal
// and total. A change that would push the total below what was already paid
// is rejected and leaves the order untouched.
func (h UpdateItemCommandHandler) Handle(ctx context.Context, command UpdateItemCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetByItemID(ctx, command.ItemID())
	if err != nil {
		return err
	}

	changes := command.Changes()
	if err = o.UpdateItem(command.ItemID(), changes.Description, changes.Quantity, changes.UnitPrice,
		changes.WeightKg, changes.Notes, command.Actor(), now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
