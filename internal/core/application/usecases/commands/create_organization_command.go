package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrCreateOrganizationCommandIsNotConstructed = errors.New(
	"CreateOrganizationCommand must be created via NewCreateOrganizationCommand constructor",
)

// CreateOrganizationCommand registers a new tenant. Only super admins may run it.
//
// Example:
//
//	cmd, err := NewCreateOrganizationCommand(actor, kernel.NewUUID(), "Fresh Fold", "fresh-fold",
//	    "hello@freshfold.com", "+233201234567")
//	if err != nil {
//	    return fmt.Errorf("invalid organization data: %w", err)
//	}
//	err = NewCreateOrganizationCommandHandler(uowFactory).Handle(ctx, cmd)
type CreateOrganizationCommand struct { //nolint:recvcheck //using for validation
	actor          staff.Actor
	organizationID kernel.UUID
	name           string
	slug           string
	email          string
	phone          string

	guard guard.ConstructorGuard
}

// NewCreateOrganizationCommand validates the identifiers; field rules are
// checked by the Organization constructor.
func NewCreateOrganizationCommand(
	actor staff.Actor,
	organizationID kernel.UUID,
	name, slug, email, phone string,
) (CreateOrganizationCommand, error) {
	if err := errors.Join(actor.Validate(), organizationID.Validate()); err != nil {
		return CreateOrganizationCommand{}, err
	}

	return CreateOrganizationCommand{
		actor:          actor,
		organizationID: organizationID,
		name:           name,
		slug:           slug,
		email:          email,
		phone:          phone,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrganizationCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrganizationCommandIsNotConstructed)
}

func (c CreateOrganizationCommand) Actor() staff.Actor {
	return c.actor
}

func (c CreateOrganizationCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

func (c CreateOrganizationCommand) Name() string {
	return c.name
}

func (c CreateOrganizationCommand) Slug() string {
	return c.slug
}

func (c CreateOrganizationCommand) Email() string {
	return c.email
}

func (c CreateOrganizationCommand) Phone() string {
	return c.phone
}
