// Package ports defines the contracts between the laundry domain and its
// infrastructure: repositories, the unit of work, event publishing and the
// idempotency store. Adapters implement them; command handlers depend on them.
package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is always loaded and saved with its items and payment ledger.
type OrderRepository interface {
	// Add persists a new order with its items.
	// Returns AlreadyExists when the bag or invoice number is taken in the organization.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order, its items and new payments.
	// The save only succeeds when the stored version still equals aggregate.Version();
	// otherwise it returns a ConcurrencyConflictError. On success the version is bumped.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns ObjectNotFound when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByItemID retrieves the order owning an item.
	// Returns ObjectNotFound with param "item" when the item does not exist.
	GetByItemID(ctx context.Context, itemID kernel.UUID) (*order.Order, error)

	// GetByItemIDs retrieves every order owning at least one of the items.
	// Unknown item ids are ignored; callers detect them by looking the items up.
	GetByItemIDs(ctx context.Context, itemIDs []kernel.UUID) ([]*order.Order, error)
}
