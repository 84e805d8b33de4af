package commands

import (
	"context"

	"laundry/internal/core/domain/model/defect"
)

type ReportDefectCommandHandler struct {
	uowFactory DefectUoWFactory
}

func NewReportDefectCommandHandler(uowFactory DefectUoWFactory) ReportDefectCommandHandler {
	return ReportDefectCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order owning the item so the report inherits its tenant
// and outlet and can check the item is still in the workflow. The order is
// written back so a concurrent item move fails on the version check.
func (h ReportDefectCommandHandler) Handle(ctx context.Context, command ReportDefectCommand) error {
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

	d, err := defect.Report(command.DefectID(), o, command.ItemID(), command.Type(), command.StageFound(),
		command.Description(), command.Actor(), now())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.DefectRepository().Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
