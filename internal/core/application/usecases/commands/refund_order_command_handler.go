package commands

import (
	"context"
)

type RefundOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRefundOrderCommandHandler(uowFactory OrderUoWFactory) RefundOrderCommandHandler {
	return RefundOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RefundOrderCommandHandler) Handle(ctx context.Context, command RefundOrderCommand) error {
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

	if _, err = o.Refund(command.Request(), command.Actor(), now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
