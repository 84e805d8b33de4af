package kernel

import (
	"laundry/internal/pkg/errs"
)

// Scoped is implemented by every tenant-owned entity.
type Scoped interface {
	ID() UUID
	OrganizationID() UUID
}

// TenantRef names a tenant-owned record for EnsureSameTenant.
type TenantRef struct {
	Entity         string
	ID             UUID
	OrganizationID UUID
}

// RefOf builds a TenantRef from a Scoped entity.
func RefOf(entity string, s Scoped) TenantRef {
	return TenantRef{Entity: entity, ID: s.ID(), OrganizationID: s.OrganizationID()}
}

// EnsureSameTenant checks that every referenced record belongs to organization.
// It is the single tenant check used by all creation and mutation paths and
// returns a TenantMismatchError for the first foreign record.
func EnsureSameTenant(organization UUID, refs ...TenantRef) error {
	if err := organization.Validate(); err != nil {
		return err
	}

	for _, ref := range refs {
		if !ref.OrganizationID.IsEqual(organization) {
			return errs.NewTenantMismatchError(ref.Entity, ref.ID.String(), organization.String(), ref.OrganizationID.String())
		}
	}

	return nil
}
