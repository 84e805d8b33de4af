package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/kernel"
)

// HandoverRepository defines the persistence contract for the append-only
// custody log.
type HandoverRepository interface {
	Add(ctx context.Context, handovers ...*custody.Handover) error

	// LastForItem returns the latest handover of an item, nil without error
	// when the item was never handed over.
	LastForItem(ctx context.Context, itemID kernel.UUID) (*custody.Handover, error)

	// LastForItems is LastForItem for a batch, keyed by item id string.
	// Items without handovers are absent from the map.
	LastForItems(ctx context.Context, itemIDs []kernel.UUID) (map[string]*custody.Handover, error)

	// ListForItem returns the whole custody chain of an item, oldest first.
	ListForItem(ctx context.Context, itemID kernel.UUID) ([]*custody.Handover, error)

	// ItemsHandedOverSince lists the items with at least one handover at or
	// after since. The zero time lists every item in the log.
	ItemsHandedOverSince(ctx context.Context, since time.Time) ([]kernel.UUID, error)
}
