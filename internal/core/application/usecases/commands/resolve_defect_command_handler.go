package commands

import (
	"context"
)

type ResolveDefectCommandHandler struct {
	uowFactory DefectUoWFactory
}

func NewResolveDefectCommandHandler(uowFactory DefectUoWFactory) ResolveDefectCommandHandler {
	return ResolveDefectCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ResolveDefectCommandHandler) Handle(ctx context.Context, command ResolveDefectCommand) error {
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

	d, err := uow.DefectRepository().Get(ctx, command.DefectID())
	if err != nil {
		return err
	}

	if err = d.Resolve(command.Actor(), command.Notes(), now()); err != nil {
		return err
	}

	if err = uow.DefectRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
