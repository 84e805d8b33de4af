package commands

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
)

// CompleteDispatchCommandHandler delivers a dispatch. Every carried item gets
// the handover the delivery implies and moves to the matching stage; the
// dispatch, the orders and the handovers are written in one transaction, so
// either every item is handed over or none is.
type CompleteDispatchCommandHandler struct {
	uowFactory  DispatchUoWFactory
	coordinator services.DispatchCoordinator
}

func NewCompleteDispatchCommandHandler(
	uowFactory DispatchUoWFactory,
	coordinator services.DispatchCoordinator,
) CompleteDispatchCommandHandler {
	return CompleteDispatchCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
	}
}

func (h CompleteDispatchCommandHandler) Handle(ctx context.Context, command DispatchCommand) error {
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

	orders, err := uow.OrderRepository().GetByItemIDs(ctx, d.ItemIDs())
	if err != nil {
		return err
	}

	last, err := uow.HandoverRepository().LastForItems(ctx, d.ItemIDs())
	if err != nil {
		return err
	}

	handovers, err := h.coordinator.Complete(d, orders, last, kernel.NewUUID, command.Actor(), now())
	if err != nil {
		return err
	}

	if err = uow.DispatchRepository().Update(ctx, d); err != nil {
		return err
	}

	for _, o := range orders {
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
	}

	if err = uow.HandoverRepository().Add(ctx, handovers...); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
