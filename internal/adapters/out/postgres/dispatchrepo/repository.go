package dispatchrepo

import (
	"context"
	"errors"
	"fmt"

	"laundry/internal/adapters/out/postgres/pgerr"
	"laundry/internal/core/domain/model/dispatch"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const activeItemConstraint = "dispatch_request_items_active_key"

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormDispatchRepository implements ports.DispatchRepository using GORM.
type GormDispatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormDispatchRepository(db *gorm.DB, tracker aggregateTracker) *GormDispatchRepository {
	return &GormDispatchRepository{db: db, tracker: tracker}
}

// Add inserts the dispatch and claims its items. An item already claimed by
// another active dispatch fails the insert on the partial unique index.
func (r *GormDispatchRepository) Add(ctx context.Context, d *dispatch.Dispatch) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(d, d.Version())
	db := r.db.WithContext(ctx)

	if err := db.Create(&dto).Error; err != nil {
		return translateWriteError(d, err)
	}
	if err := db.Create(&items).Error; err != nil {
		return translateWriteError(d, err)
	}

	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

// Update writes a status change under an optimistic version check. Items of a
// dispatch that reached a terminal status are released.
func (r *GormDispatchRepository) Update(ctx context.Context, d *dispatch.Dispatch) error {
	if err := d.Validate(); err != nil {
		return err
	}

	loaded := d.Version()
	dto, _ := fromDomain(d, loaded+1)
	db := r.db.WithContext(ctx)

	result := db.Model(&DispatchDTO{}).
		Where("id = ? AND version = ?", dto.ID, loaded).
		Select("status", "dispatcher_id", "accepted_at", "started_at", "completed_at", "cancelled_at", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&DispatchDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("dispatch", d.ID().String())
		}
		return errs.NewConcurrencyConflictError("dispatch", d.ID().String(), loaded)
	}

	if !d.Status().IsActive() {
		err := db.Model(&DispatchItemDTO{}).
			Where("dispatch_id = ?", dto.ID).
			Update("active", false).Error
		if err != nil {
			return err
		}
	}

	d.MarkPersisted(loaded + 1)
	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

func (r *GormDispatchRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto DispatchDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatch", id.String())
		}
		return nil, err
	}

	var items []DispatchItemDTO
	if err := db.Where("dispatch_id = ?", dto.ID).Order("position").Find(&items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, items)
}

// ActiveItemIDs returns those of itemIDs held by a pending, accepted or in
// transit dispatch.
func (r *GormDispatchRepository) ActiveItemIDs(ctx context.Context, itemIDs []kernel.UUID) ([]kernel.UUID, error) {
	if len(itemIDs) == 0 {
		return []kernel.UUID{}, nil
	}

	raw := make([]uuid.UUID, 0, len(itemIDs))
	for _, id := range itemIDs {
		raw = append(raw, id.Bytes())
	}

	var busy []uuid.UUID
	err := r.db.WithContext(ctx).Model(&DispatchItemDTO{}).
		Where("active AND item_id IN ?", raw).
		Pluck("item_id", &busy).Error
	if err != nil {
		return nil, err
	}

	result := make([]kernel.UUID, 0, len(busy))
	for _, b := range busy {
		id, err := kernel.UUIDFromGoogle(b)
		if err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	return result, nil
}

func translateWriteError(d *dispatch.Dispatch, err error) error {
	if constraint, ok := pgerr.UniqueViolation(err); ok {
		if constraint == activeItemConstraint {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("an item of dispatch %s is already travelling: %w", d.ID(), err))
		}
		return errs.NewAlreadyExistsErrorWithCause("dispatch", d.ID().String(), err)
	}
	if constraint, ok := pgerr.ForeignKeyViolation(err); ok {
		if constraint == "dispatch_request_items_item_id_fkey" {
			return errs.NewObjectNotFoundErrorWithCause("item", d.ID().String(), err)
		}
		return errs.NewObjectNotFoundErrorWithCause("outlet", d.OutletID().String(), err)
	}
	return err
}
