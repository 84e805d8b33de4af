package staff

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when a zero value Actor is used.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the resolved identity performing an operation. It is passed
// explicitly to every command instead of being read from ambient state.
type Actor struct {
	userID         kernel.UUID
	organizationID *kernel.UUID
	role           Role
	guard          guard.ConstructorGuard
}

// NewActor creates an Actor. Staff roles require an organization; customers
// and super admins must not have one.
func NewActor(userID kernel.UUID, organizationID *kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	if err := validateMembership(organizationID, role); err != nil {
		return Actor{}, err
	}

	return Actor{
		userID:         userID,
		organizationID: organizationID,
		role:           role,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the actor was built through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// UserID returns the acting user.
func (a Actor) UserID() kernel.UUID {
	return a.userID
}

// OrganizationID returns the actor's organization, nil for customers and super admins.
func (a Actor) OrganizationID() *kernel.UUID {
	return a.organizationID
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Require returns PermissionDenied unless the role holds the capability.
func (a Actor) Require(c Capability) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.role.Can(c) {
		return errs.NewPermissionDeniedError(a.role.String(), c.String())
	}
	return nil
}

// EnsureTenant returns TenantMismatch unless the actor works for organization.
// Super admins act across tenants.
func (a Actor) EnsureTenant(organization kernel.UUID) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.role == SuperAdmin {
		return nil
	}
	if a.organizationID == nil {
		return errs.NewTenantMismatchError("actor", a.userID.String(), organization.String(), "none")
	}
	return kernel.EnsureSameTenant(organization, kernel.TenantRef{
		Entity:         "actor",
		ID:             a.userID,
		OrganizationID: *a.organizationID,
	})
}

// RequireIn combines EnsureTenant and Require, the usual guard at the start
// of a command.
func (a Actor) RequireIn(organization kernel.UUID, c Capability) error {
	if err := a.EnsureTenant(organization); err != nil {
		return err
	}
	return a.Require(c)
}

func validateMembership(organizationID *kernel.UUID, role Role) error {
	if role.BelongsToOrganization() {
		if organizationID == nil {
			return errs.NewValueIsRequiredErrorWithCause("organization",
				errors.New(role.String()+" must belong to an organization"))
		}
		return organizationID.Validate()
	}
	if organizationID != nil {
		return errs.NewValueIsInvalidErrorWithCause("organization",
			errors.New(role.String()+" cannot belong to an organization"))
	}
	return nil
}
