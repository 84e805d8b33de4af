package commands

import (
	"context"

	"laundry/internal/core/domain/model/staff"
)

// RegisterUserCommandHandler persists a new user.
type RegisterUserCommandHandler struct {
	uowFactory OrganizationUoWFactory
}

// NewRegisterUserCommandHandler creates the handler.
func NewRegisterUserCommandHandler(uowFactory OrganizationUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle checks who may create the account, that the organization exists for
// staff roles, and stores the user. Duplicate emails or phones surface as
// AlreadyExists from the repository.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, command RegisterUserCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	if err := h.authorize(command); err != nil {
		return err
	}

	details := command.Details()
	user, err := staff.NewUser(command.UserID(), command.OrganizationID(), command.Role(),
		details.Email, details.Phone, details.FirstName, details.LastName, details.Address, now())
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

	if org := command.OrganizationID(); org != nil {
		if _, err = uow.OrganizationRepository().Get(ctx, *org); err != nil {
			return err
		}
	}

	if err = uow.UserRepository().Add(ctx, user); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h RegisterUserCommandHandler) authorize(command RegisterUserCommand) error {
	actor := command.Actor()
	switch {
	case command.Role() == staff.Customer:
		return nil
	case command.Role() == staff.SuperAdmin:
		return actor.Require(staff.CreateOrganizations)
	case command.OrganizationID() == nil:
		// NewUser reports the missing organization.
		return actor.Require(staff.ManageUsers)
	default:
		return actor.RequireIn(*command.OrganizationID(), staff.ManageUsers)
	}
}
