package defectrepo

import (
	"context"
	"errors"

	"laundry/internal/adapters/out/postgres/pgerr"
	"laundry/internal/core/domain/model/defect"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormDefectRepository implements ports.DefectRepository using GORM.
type GormDefectRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormDefectRepository(db *gorm.DB, tracker aggregateTracker) *GormDefectRepository {
	return &GormDefectRepository{db: db, tracker: tracker}
}

func (r *GormDefectRepository) Add(ctx context.Context, d *defect.Defect) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := pgerr.UniqueViolation(err); ok {
			return errs.NewAlreadyExistsErrorWithCause("defect", d.ID().String(), err)
		}
		if _, ok := pgerr.ForeignKeyViolation(err); ok {
			return errs.NewObjectNotFoundErrorWithCause("item", d.ItemID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

// Update writes the resolution. An already resolved row is never rewritten,
// so two resolvers racing on the same defect cannot both win.
func (r *GormDefectRepository) Update(ctx context.Context, d *defect.Defect) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	result := r.db.WithContext(ctx).Model(&DefectDTO{}).
		Where("id = ? AND NOT resolved", dto.ID).
		Select("resolved", "resolved_by", "resolved_at", "resolution_notes").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&DefectDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("defect", d.ID().String())
		}
		return errs.NewConcurrencyConflictError("defect", d.ID().String(), 0)
	}

	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

func (r *GormDefectRepository) Get(ctx context.Context, id kernel.UUID) (*defect.Defect, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DefectDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("defect", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
