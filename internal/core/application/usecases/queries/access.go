package queries

import (
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
)

// authorizeOrderRead lets staff of the owning organization, super admins and
// the order's own customer read an order.
func authorizeOrderRead(actor staff.Actor, organizationID kernel.UUID, customerID *kernel.UUID) error {
	if actor.Role() != staff.Customer {
		return actor.EnsureTenant(organizationID)
	}
	if customerID != nil && customerID.IsEqual(actor.UserID()) {
		return nil
	}
	return errs.NewPermissionDeniedError(actor.Role().String(), "read orders of other customers")
}

// authorizeStaffRead restricts tenant-wide listings to the organization's staff.
func authorizeStaffRead(actor staff.Actor, organizationID kernel.UUID) error {
	if actor.Role() == staff.Customer {
		return errs.NewPermissionDeniedError(actor.Role().String(), "list organization records")
	}
	return actor.EnsureTenant(organizationID)
}

func optionalUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromGoogle(id.UUID)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func toUUIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromGoogle(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
