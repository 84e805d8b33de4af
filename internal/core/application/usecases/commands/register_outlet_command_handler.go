package commands

import (
	"context"

	"laundry/internal/core/domain/model/organization"
	"laundry/internal/core/domain/model/staff"
)

// RegisterOutletCommandHandler persists a new outlet of an existing organization.
type RegisterOutletCommandHandler struct {
	uowFactory OrganizationUoWFactory
}

// NewRegisterOutletCommandHandler creates the handler.
func NewRegisterOutletCommandHandler(uowFactory OrganizationUoWFactory) RegisterOutletCommandHandler {
	return RegisterOutletCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle checks the actor manages outlets of the organization and stores the outlet.
func (h RegisterOutletCommandHandler) Handle(ctx context.Context, command RegisterOutletCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	if err := command.Actor().RequireIn(command.OrganizationID(), staff.ManageOutlets); err != nil {
		return err
	}

	details := command.Details()
	outlet, err := organization.NewOutlet(command.OutletID(), command.OrganizationID(), details.Name,
		details.ShortName, details.Phone, details.WhatsApp, details.Address, command.Location())
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

	if _, err = uow.OrganizationRepository().Get(ctx, command.OrganizationID()); err != nil {
		return err
	}

	if err = uow.OutletRepository().Add(ctx, outlet); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
