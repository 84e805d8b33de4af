package commands

import (
	"context"

	"laundry/internal/core/domain/model/organization"
	"laundry/internal/core/domain/model/staff"
)

// CreateOrganizationCommandHandler persists a new tenant.
type CreateOrganizationCommandHandler struct {
	uowFactory OrganizationUoWFactory
}

// NewCreateOrganizationCommandHandler creates the handler.
func NewCreateOrganizationCommandHandler(uowFactory OrganizationUoWFactory) CreateOrganizationCommandHandler {
	return CreateOrganizationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle checks the actor may create tenants and stores the organization.
// A taken slug surfaces as AlreadyExists from the repository.
func (h CreateOrganizationCommandHandler) Handle(ctx context.Context, command CreateOrganizationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	if err := command.Actor().Require(staff.CreateOrganizations); err != nil {
		return err
	}

	org, err := organization.NewOrganization(command.OrganizationID(), command.Name(), command.Slug(),
		command.Email(), command.Phone(), now())
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

	if err = uow.OrganizationRepository().Add(ctx, org); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
