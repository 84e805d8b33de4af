package commands

import (
	"context"
)

type ApplyDiscountCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewApplyDiscountCommandHandler(uowFactory OrderUoWFactory) ApplyDiscountCommandHandler {
	return ApplyDiscountCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ApplyDiscountCommandHandler) Handle(ctx context.Context, command ApplyDiscountCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = o.ApplyDiscount(command.Discount(), command.Actor(), now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
