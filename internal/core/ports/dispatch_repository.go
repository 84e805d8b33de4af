package ports

import (
	"context"

	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/model/kernel"
)

// DispatchRepository defines the persistence contract for dispatch requests.
type DispatchRepository interface {
	// Add persists a new dispatch and marks its items as travelling.
	// Returns ValueIsInvalid on "items" when the storage layer finds one of the
	// items already in another active dispatch.
	Add(ctx context.Context, d *dispatch.Dispatch) error

	// Update persists a status change with the same optimistic version check
	// as OrderRepository.Update. Items of a dispatch that reaches a terminal
	// status are released.
	Update(ctx context.Context, d *dispatch.Dispatch) error

	// Get retrieves a dispatch by id, ObjectNotFound when missing.
	Get(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error)

	// ActiveItemIDs returns those of itemIDs carried by a pending, accepted or
	// in transit dispatch.
	ActiveItemIDs(ctx context.Context, itemIDs []kernel.UUID) ([]kernel.UUID, error)
}
