// Package custodyrepo persists the append-only item handover log.
package custodyrepo

import (
	"time"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// HandoverDTO is the item_handovers row. The seq column is assigned by the
// database and breaks ties between handovers recorded in the same instant.
type HandoverDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq            int64      `gorm:"->"`
	OrganizationID uuid.UUID  `gorm:"type:uuid"`
	ItemID         uuid.UUID  `gorm:"type:uuid"`
	OrderID        uuid.UUID  `gorm:"type:uuid"`
	FromStage      string
	ToStage        string
	HandedOverBy   uuid.UUID  `gorm:"type:uuid"`
	ReceivedBy     *uuid.UUID `gorm:"type:uuid"`
	HandedOverAt   time.Time
	ReceivedAt     *time.Time
}

func (HandoverDTO) TableName() string {
	return "item_handovers"
}

func fromDomain(h *custody.Handover) HandoverDTO {
	dto := HandoverDTO{
		ID:             h.ID().Bytes(),
		OrganizationID: h.OrganizationID().Bytes(),
		ItemID:         h.ItemID().Bytes(),
		OrderID:        h.OrderID().Bytes(),
		ToStage:        h.ToStage().String(),
		HandedOverBy:   h.HandedOverBy().Bytes(),
		HandedOverAt:   h.HandedOverAt(),
		ReceivedAt:     h.ReceivedAt(),
	}
	if from := h.FromStage(); from != nil {
		dto.FromStage = from.String()
	}
	if receivedBy := h.ReceivedBy(); receivedBy != nil {
		raw := receivedBy.Bytes()
		dto.ReceivedBy = &raw
	}
	return dto
}

func toDomain(dto HandoverDTO) (*custody.Handover, error) {
	var ids [5]kernel.UUID
	for i, raw := range []uuid.UUID{dto.ID, dto.OrganizationID, dto.ItemID, dto.OrderID, dto.HandedOverBy} {
		id, err := kernel.UUIDFromGoogle(raw)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	from, err := custody.ParseOptionalStage(dto.FromStage)
	if err != nil {
		return nil, err
	}
	to, err := custody.ParseStage(dto.ToStage)
	if err != nil {
		return nil, err
	}

	var receivedBy *kernel.UUID
	if dto.ReceivedBy != nil {
		id, err := kernel.UUIDFromGoogle(*dto.ReceivedBy)
		if err != nil {
			return nil, err
		}
		receivedBy = &id
	}

	return custody.RestoreHandover(custody.HandoverSnapshot{
		ID:             ids[0],
		OrganizationID: ids[1],
		ItemID:         ids[2],
		OrderID:        ids[3],
		FromStage:      from,
		ToStage:        to,
		HandedOverBy:   ids[4],
		ReceivedBy:     receivedBy,
		HandedOverAt:   dto.HandedOverAt,
		ReceivedAt:     dto.ReceivedAt,
	})
}
