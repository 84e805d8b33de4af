package orderrepo

import (
	"context"
	"errors"

	"laundry/internal/adapters/out/postgres/pgerr"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order with its items and payments.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items, payments := fromDomain(aggregate, aggregate.Version())
	db := r.db.WithContext(ctx)

	if err := db.Create(&dto).Error; err != nil {
		return translateWriteError(aggregate, err)
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return translateWriteError(aggregate, err)
		}
	}
	if len(payments) > 0 {
		if err := db.Create(&payments).Error; err != nil {
			return translateWriteError(aggregate, err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row under an optimistic version check, upserts the
// items and appends payments that are not stored yet.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	loaded := aggregate.Version()
	dto, items, payments := fromDomain(aggregate, loaded+1)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loaded).
		Select("*").
		Omit("id", "organization_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return translateWriteError(aggregate, result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	if len(items) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"description", "quantity", "unit_price", "weight_kg", "notes", "stage", "stage_changed_at",
			}),
		}).Create(&items).Error
		if err != nil {
			return translateWriteError(aggregate, err)
		}
	}

	if len(payments) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&payments).Error
		if err != nil {
			return translateWriteError(aggregate, err)
		}
	}

	aggregate.MarkPersisted(loaded + 1)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	orders, err := r.hydrate(ctx, []OrderDTO{dto})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// GetByItemID retrieves the order owning an item.
func (r *GormOrderRepository) GetByItemID(ctx context.Context, itemID kernel.UUID) (*order.Order, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var orderIDs []uuid.UUID
	err := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ?", itemID.Bytes()).
		Pluck("order_id", &orderIDs).Error
	if err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return nil, errs.NewObjectNotFoundError("item", itemID.String())
	}

	orderID, err := kernel.UUIDFromGoogle(orderIDs[0])
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, orderID)
}

// GetByItemIDs retrieves every order owning one of the items. The order rows
// are locked FOR UPDATE in id order until the transaction ends, which
// serializes concurrent dispatch requests over the same orders.
func (r *GormOrderRepository) GetByItemIDs(ctx context.Context, itemIDs []kernel.UUID) ([]*order.Order, error) {
	if len(itemIDs) == 0 {
		return []*order.Order{}, nil
	}

	raw := make([]uuid.UUID, 0, len(itemIDs))
	for _, id := range itemIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	db := r.db.WithContext(ctx)

	var orderIDs []uuid.UUID
	err := db.Model(&ItemDTO{}).
		Distinct("order_id").
		Where("id IN ?", raw).
		Pluck("order_id", &orderIDs).Error
	if err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return []*order.Order{}, nil
	}

	var dtos []OrderDTO
	err = db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id IN ?", orderIDs).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.hydrate(ctx, dtos)
}

// hydrate loads the items and payments of the given orders with one query
// each and rebuilds the aggregates.
func (r *GormOrderRepository) hydrate(ctx context.Context, dtos []OrderDTO) ([]*order.Order, error) {
	ids := make([]uuid.UUID, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}

	db := r.db.WithContext(ctx)

	var items []ItemDTO
	if err := db.Where("order_id IN ?", ids).Order("created_at, id").Find(&items).Error; err != nil {
		return nil, err
	}
	var payments []PaymentDTO
	if err := db.Where("order_id IN ?", ids).Order("paid_at, id").Find(&payments).Error; err != nil {
		return nil, err
	}

	itemsByOrder := make(map[uuid.UUID][]ItemDTO, len(dtos))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	paymentsByOrder := make(map[uuid.UUID][]PaymentDTO, len(dtos))
	for _, p := range payments {
		paymentsByOrder[p.OrderID] = append(paymentsByOrder[p.OrderID], p)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto, itemsByOrder[dto.ID], paymentsByOrder[dto.ID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// missingOrStale tells an unknown order from one saved by someone else since
// it was loaded.
func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewConcurrencyConflictError("order", aggregate.ID().String(), aggregate.Version())
}

func translateWriteError(aggregate *order.Order, err error) error {
	if constraint, ok := pgerr.UniqueViolation(err); ok {
		switch constraint {
		case "orders_bag_number_key":
			return errs.NewAlreadyExistsErrorWithCause("bag_number", aggregate.BagNumber(), err)
		case "orders_invoice_number_key":
			return errs.NewAlreadyExistsErrorWithCause("invoice_number", aggregate.InvoiceNumber(), err)
		case "payments_idempotency_key":
			return errs.NewAlreadyExistsErrorWithCause("idempotency_key", aggregate.ID().String(), err)
		default:
			return errs.NewAlreadyExistsErrorWithCause("order", aggregate.ID().String(), err)
		}
	}
	if constraint, ok := pgerr.ForeignKeyViolation(err); ok {
		switch constraint {
		case "orders_customer_id_fkey":
			return errs.NewObjectNotFoundErrorWithCause("customer", aggregate.CustomerID(), err)
		default:
			return errs.NewObjectNotFoundErrorWithCause("outlet", aggregate.OutletID().String(), err)
		}
	}
	return err
}
