package commands

import (
	"context"

	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/services"
)

// StartDispatchCommandHandler puts an accepted dispatch on the road. For
// dispatches leaving the factory the carried items move to
// in_transit_to_outlet in the same transaction.
type StartDispatchCommandHandler struct {
	uowFactory  DispatchUoWFactory
	coordinator services.DispatchCoordinator
}

func NewStartDispatchCommandHandler(
	uowFactory DispatchUoWFactory,
	coordinator services.DispatchCoordinator,
) StartDispatchCommandHandler {
	return StartDispatchCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
	}
}

func (h StartDispatchCommandHandler) Handle(ctx context.Context, command DispatchCommand) error {
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

	if err = h.coordinator.Start(d, orders, command.Actor(), now()); err != nil {
		return err
	}

	if err = uow.DispatchRepository().Update(ctx, d); err != nil {
		return err
	}

	if d.Direction() == dispatch.FromFactory {
		for _, o := range orders {
			if err = uow.OrderRepository().Update(ctx, o); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}
