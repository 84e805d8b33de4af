// Package dispatchrepo persists dispatch requests and the items they carry.
package dispatchrepo

import (
	"time"

	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DispatchDTO is the dispatch_requests row. A NULL outlet column is the factory.
type DispatchDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID      uuid.UUID  `gorm:"type:uuid"`
	SourceOutletID      *uuid.UUID `gorm:"type:uuid"`
	DestinationOutletID *uuid.UUID `gorm:"type:uuid"`
	Status              string
	RequestedBy         uuid.UUID  `gorm:"type:uuid"`
	DispatcherID        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time
	AcceptedAt          *time.Time
	StartedAt           *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time
	Version             int64
}

func (DispatchDTO) TableName() string {
	return "dispatch_requests"
}

// DispatchItemDTO links a dispatch to an item. Active rows hold the item:
// a unique index allows one active row per item.
type DispatchItemDTO struct {
	DispatchID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int
	Active     bool
}

func (DispatchItemDTO) TableName() string {
	return "dispatch_request_items"
}

func fromDomain(d *dispatch.Dispatch, version int64) (DispatchDTO, []DispatchItemDTO) {
	dto := DispatchDTO{
		ID:                  d.ID().Bytes(),
		OrganizationID:      d.OrganizationID().Bytes(),
		SourceOutletID:      optionalID(d.Source().OutletID()),
		DestinationOutletID: optionalID(d.Destination().OutletID()),
		Status:              d.Status().String(),
		RequestedBy:         d.RequestedBy().Bytes(),
		DispatcherID:        optionalID(d.DispatcherID()),
		CreatedAt:           d.CreatedAt(),
		AcceptedAt:          d.AcceptedAt(),
		StartedAt:           d.StartedAt(),
		CompletedAt:         d.CompletedAt(),
		CancelledAt:         d.CancelledAt(),
		Version:             version,
	}

	items := make([]DispatchItemDTO, 0, len(d.ItemIDs()))
	for i, itemID := range d.ItemIDs() {
		items = append(items, DispatchItemDTO{
			DispatchID: dto.ID,
			ItemID:     itemID.Bytes(),
			Position:   i,
			Active:     d.Status().IsActive(),
		})
	}
	return dto, items
}

func toDomain(dto DispatchDTO, items []DispatchItemDTO) (*dispatch.Dispatch, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromGoogle(dto.OrganizationID)
	if err != nil {
		return nil, err
	}
	requestedBy, err := kernel.UUIDFromGoogle(dto.RequestedBy)
	if err != nil {
		return nil, err
	}
	status, err := dispatch.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	sourceOutlet, err := restoreOptionalID(dto.SourceOutletID)
	if err != nil {
		return nil, err
	}
	source, err := dispatch.EndpointFromOutlet(sourceOutlet)
	if err != nil {
		return nil, err
	}
	destinationOutlet, err := restoreOptionalID(dto.DestinationOutletID)
	if err != nil {
		return nil, err
	}
	destination, err := dispatch.EndpointFromOutlet(destinationOutlet)
	if err != nil {
		return nil, err
	}
	dispatcherID, err := restoreOptionalID(dto.DispatcherID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		itemID, err := kernel.UUIDFromGoogle(item.ItemID)
		if err != nil {
			return nil, err
		}
		itemIDs = append(itemIDs, itemID)
	}

	return dispatch.RestoreDispatch(dispatch.Snapshot{
		ID:             id,
		OrganizationID: organizationID,
		Source:         source,
		Destination:    destination,
		ItemIDs:        itemIDs,
		Status:         status,
		RequestedBy:    requestedBy,
		DispatcherID:   dispatcherID,
		CreatedAt:      dto.CreatedAt,
		AcceptedAt:     dto.AcceptedAt,
		StartedAt:      dto.StartedAt,
		CompletedAt:    dto.CompletedAt,
		CancelledAt:    dto.CancelledAt,
		Version:        dto.Version,
	})
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
