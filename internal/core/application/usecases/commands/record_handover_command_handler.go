package commands

import (
	"context"

	"laundry/internal/core/domain/services"
)

// RecordHandoverCommandHandler appends a link to an item's custody chain and
// applies the stage move the handover implies.
type RecordHandoverCommandHandler struct {
	uowFactory CustodyUoWFactory
	recorder   services.HandoverRecorder
}

func NewRecordHandoverCommandHandler(
	uowFactory CustodyUoWFactory,
	recorder services.HandoverRecorder,
) RecordHandoverCommandHandler {
	return RecordHandoverCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h RecordHandoverCommandHandler) Handle(ctx context.Context, command RecordHandoverCommand) error {
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

	previous, err := uow.HandoverRepository().LastForItem(ctx, command.ItemID())
	if err != nil {
		return err
	}

	handover, err := h.recorder.Record(o, previous, services.TeamHandover{
		ID:         command.HandoverID(),
		ItemID:     command.ItemID(),
		From:       command.From(),
		To:         command.To(),
		ReceivedBy: command.ReceivedBy(),
	}, command.Actor(), now())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.HandoverRepository().Add(ctx, handover); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
