package commands

import (
	"context"
)

// AdvanceItemCommandHandler loads the order owning the item and moves the
// item. Stage adjacency and the role allowed to set the target stage are
// checked by the aggregate.
type AdvanceItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAdvanceItemCommandHandler(uowFactory OrderUoWFactory) AdvanceItemCommandHandler {
	return AdvanceItemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AdvanceItemCommandHandler) Handle(ctx context.Context, command AdvanceItemCommand) error {
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

	if err = o.AdvanceItem(command.ItemID(), command.Target(), command.Actor(), now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
