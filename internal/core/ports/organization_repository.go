package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/organization"
	"laundry/internal/core/domain/model/staff"
)

// OrganizationRepository defines the persistence contract for tenants.
type OrganizationRepository interface {
	// Add persists a new organization. Returns AlreadyExists on a taken slug.
	Add(ctx context.Context, org *organization.Organization) error

	// Update persists the billing status and contact details.
	Update(ctx context.Context, org *organization.Organization) error

	// Get retrieves an organization by id, ObjectNotFound when missing.
	Get(ctx context.Context, id kernel.UUID) (*organization.Organization, error)
}

// OutletRepository defines the persistence contract for outlets.
type OutletRepository interface {
	Add(ctx context.Context, outlet *organization.Outlet) error
	Get(ctx context.Context, id kernel.UUID) (*organization.Outlet, error)
}

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	// Add persists a new user. Returns AlreadyExists on a taken email or phone.
	Add(ctx context.Context, user *staff.User) error

	// Get retrieves a user by id, ObjectNotFound when missing.
	Get(ctx context.Context, id kernel.UUID) (*staff.User, error)
}
