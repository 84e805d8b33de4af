// Package defectrepo persists defect reports.
package defectrepo

import (
	"time"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/defect"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DefectDTO is the defect_reports row.
type DefectDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID  uuid.UUID  `gorm:"type:uuid"`
	OutletID        uuid.UUID  `gorm:"type:uuid"`
	ItemID          uuid.UUID  `gorm:"type:uuid"`
	OrderID         uuid.UUID  `gorm:"type:uuid"`
	Type            string
	StageFound      string
	Description     string
	ReportedBy      uuid.UUID  `gorm:"type:uuid"`
	ReportedAt      time.Time
	Resolved        bool
	ResolvedBy      *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt      *time.Time
	ResolutionNotes string
}

func (DefectDTO) TableName() string {
	return "defect_reports"
}

func fromDomain(d *defect.Defect) DefectDTO {
	dto := DefectDTO{
		ID:              d.ID().Bytes(),
		OrganizationID:  d.OrganizationID().Bytes(),
		OutletID:        d.OutletID().Bytes(),
		ItemID:          d.ItemID().Bytes(),
		OrderID:         d.OrderID().Bytes(),
		Type:            d.Type().String(),
		StageFound:      d.StageFound().String(),
		Description:     d.Description(),
		ReportedBy:      d.ReportedBy().Bytes(),
		ReportedAt:      d.ReportedAt(),
		Resolved:        d.IsResolved(),
		ResolvedAt:      d.ResolvedAt(),
		ResolutionNotes: d.ResolutionNotes(),
	}
	if resolvedBy := d.ResolvedBy(); resolvedBy != nil {
		raw := resolvedBy.Bytes()
		dto.ResolvedBy = &raw
	}
	return dto
}

func toDomain(dto DefectDTO) (*defect.Defect, error) {
	var ids [6]kernel.UUID
	for i, raw := range []uuid.UUID{dto.ID, dto.OrganizationID, dto.OutletID, dto.ItemID, dto.OrderID, dto.ReportedBy} {
		id, err := kernel.UUIDFromGoogle(raw)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	defectType, err := defect.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	stage, err := custody.ParseStage(dto.StageFound)
	if err != nil {
		return nil, err
	}

	var resolvedBy *kernel.UUID
	if dto.ResolvedBy != nil {
		id, err := kernel.UUIDFromGoogle(*dto.ResolvedBy)
		if err != nil {
			return nil, err
		}
		resolvedBy = &id
	}

	return defect.Restore(defect.Snapshot{
		ID:              ids[0],
		OrganizationID:  ids[1],
		OutletID:        ids[2],
		ItemID:          ids[3],
		OrderID:         ids[4],
		Type:            defectType,
		StageFound:      stage,
		Description:     dto.Description,
		ReportedBy:      ids[5],
		ReportedAt:      dto.ReportedAt,
		Resolved:        dto.Resolved,
		ResolvedBy:      resolvedBy,
		ResolvedAt:      dto.ResolvedAt,
		ResolutionNotes: dto.ResolutionNotes,
	})
}
