package commands

import (
	"context"

	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/services"
)

// CreateDispatchCommandHandler validates and stores a new dispatch request.
//
// The orders owning the items are loaded with a row lock, so two requests
// racing for the same item are serialized and the second one sees the first
// dispatch as active.
type CreateDispatchCommandHandler struct {
	uowFactory  DispatchUoWFactory
	coordinator services.DispatchCoordinator
}

func NewCreateDispatchCommandHandler(
	uowFactory DispatchUoWFactory,
	coordinator services.DispatchCoordinator,
) CreateDispatchCommandHandler {
	return CreateDispatchCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
	}
}

func (h CreateDispatchCommandHandler) Handle(ctx context.Context, command CreateDispatchCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	d, err := dispatch.NewDispatch(command.DispatchID(), command.OrganizationID(), command.Source(),
		command.Destination(), command.ItemIDs(), command.Actor(), now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outlet, err := uow.OutletRepository().Get(ctx, d.OutletID())
	if err != nil {
		return err
	}

	orders, err := uow.OrderRepository().GetByItemIDs(ctx, d.ItemIDs())
	if err != nil {
		return err
	}

	active, err := uow.DispatchRepository().ActiveItemIDs(ctx, d.ItemIDs())
	if err != nil {
		return err
	}

	if err = h.coordinator.ValidateNew(d, outlet, orders, active); err != nil {
		return err
	}

	if err = uow.DispatchRepository().Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
