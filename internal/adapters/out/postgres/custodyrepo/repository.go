package custodyrepo

import (
	"context"
	"errors"
	"time"

	"laundry/internal/adapters/out/postgres/pgerr"
	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormHandoverRepository implements ports.HandoverRepository using GORM.
// Rows are only ever inserted.
type GormHandoverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormHandoverRepository(db *gorm.DB, tracker aggregateTracker) *GormHandoverRepository {
	return &GormHandoverRepository{db: db, tracker: tracker}
}

// Add appends handovers in the given order.
func (r *GormHandoverRepository) Add(ctx context.Context, handovers ...*custody.Handover) error {
	if len(handovers) == 0 {
		return nil
	}

	dtos := make([]HandoverDTO, 0, len(handovers))
	for _, h := range handovers {
		if err := h.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(h))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		if _, ok := pgerr.UniqueViolation(err); ok {
			return errs.NewAlreadyExistsErrorWithCause("handover", handovers[0].ID().String(), err)
		}
		if _, ok := pgerr.ForeignKeyViolation(err); ok {
			return errs.NewObjectNotFoundErrorWithCause("item", handovers[0].ItemID().String(), err)
		}
		return err
	}

	for _, h := range handovers {
		r.tracker.TrackAggregate(h.ID(), h)
	}
	return nil
}

// LastForItem returns nil without error when the item has no handover.
func (r *GormHandoverRepository) LastForItem(ctx context.Context, itemID kernel.UUID) (*custody.Handover, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var dto HandoverDTO
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID.Bytes()).
		Order("handed_over_at DESC, seq DESC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// LastForItems returns the latest handover per item keyed by item id.
func (r *GormHandoverRepository) LastForItems(ctx context.Context, itemIDs []kernel.UUID) (map[string]*custody.Handover, error) {
	result := make(map[string]*custody.Handover, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	raw := make([]uuid.UUID, 0, len(itemIDs))
	for _, id := range itemIDs {
		raw = append(raw, id.Bytes())
	}

	var dtos []HandoverDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (item_id) *
		FROM item_handovers
		WHERE item_id IN ?
		ORDER BY item_id, handed_over_at DESC, seq DESC`, raw).
		Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		h, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result[h.ItemID().String()] = h
	}
	return result, nil
}

// ListForItem returns the whole chain of an item, oldest first.
func (r *GormHandoverRepository) ListForItem(ctx context.Context, itemID kernel.UUID) ([]*custody.Handover, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HandoverDTO
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID.Bytes()).
		Order("handed_over_at, seq").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	handovers := make([]*custody.Handover, 0, len(dtos))
	for _, dto := range dtos {
		h, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		handovers = append(handovers, h)
	}
	return handovers, nil
}

func (r *GormHandoverRepository) ItemsHandedOverSince(ctx context.Context, since time.Time) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&HandoverDTO{}).
		Distinct("item_id").
		Where("handed_over_at >= ?", since).
		Order("item_id").
		Pluck("item_id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		itemID, err := kernel.UUIDFromGoogle(id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, itemID)
	}
	return ids, nil
}
