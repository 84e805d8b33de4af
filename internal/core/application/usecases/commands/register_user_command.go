package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// UserDetails are the contact fields of a user.
type UserDetails struct {
	Email     string
	Phone     string
	FirstName string
	LastName  string
	Address   string
}

// RegisterUserCommand creates a staff member, a super admin or a customer.
//
// Customers may sign up on their own, so actor is optional for them. Staff
// accounts are created by an admin of the organization and super admins by
// another super admin.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	actor          *staff.Actor
	userID         kernel.UUID
	organizationID *kernel.UUID
	role           staff.Role
	details        UserDetails

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand validates identifiers and the role.
func NewRegisterUserCommand(
	actor *staff.Actor,
	userID kernel.UUID,
	organizationID *kernel.UUID,
	role staff.Role,
	details UserDetails,
) (RegisterUserCommand, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return RegisterUserCommand{}, err
	}
	if actor == nil && role != staff.Customer {
		return RegisterUserCommand{}, ErrActorIsRequired
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return RegisterUserCommand{}, err
		}
	}

	return RegisterUserCommand{
		actor:          actor,
		userID:         userID,
		organizationID: organizationID,
		role:           role,
		details:        details,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// Actor returns the registering user, nil for customer self sign-up.
func (c RegisterUserCommand) Actor() *staff.Actor {
	return c.actor
}

func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterUserCommand) OrganizationID() *kernel.UUID {
	return c.organizationID
}

func (c RegisterUserCommand) Role() staff.Role {
	return c.role
}

func (c RegisterUserCommand) Details() UserDetails {
	return c.details
}
