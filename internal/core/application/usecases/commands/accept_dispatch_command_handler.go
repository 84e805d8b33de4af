package commands

import (
	"context"
)

// AcceptDispatchCommandHandler assigns the acting dispatcher to a pending dispatch.
type AcceptDispatchCommandHandler struct {
	uowFactory DispatchUoWFactory
}

func NewAcceptDispatchCommandHandler(uowFactory DispatchUoWFactory) AcceptDispatchCommandHandler {
	return AcceptDispatchCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AcceptDispatchCommandHandler) Handle(ctx context.Context, command DispatchCommand) error {
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

	d, err := uow.DispatchRepository().Get(ctx, command.DispatchID())
	if err != nil {
		return err
	}

	if err = d.Accept(command.Actor(), now()); err != nil {
		return err
	}

	if err = uow.DispatchRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
