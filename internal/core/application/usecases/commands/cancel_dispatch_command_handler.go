package commands

import (
	"context"
)

// CancelDispatchCommandHandler cancels a dispatch that has not left yet.
// Items stay where they are and become free for another dispatch.
type CancelDispatchCommandHandler struct {
	uowFactory DispatchUoWFactory
}

func NewCancelDispatchCommandHandler(uowFactory DispatchUoWFactory) CancelDispatchCommandHandler {
	return CancelDispatchCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CancelDispatchCommandHandler) Handle(ctx context.Context, command DispatchCommand) error {
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

	if err = d.Cancel(command.Actor(), now()); err != nil {
		return err
	}

	if err = uow.DispatchRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
