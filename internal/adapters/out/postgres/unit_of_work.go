// Package postgres provides the GORM-based Unit of Work and schema migrations.
// The Unit of Work maintains the aggregates affected by a business transaction,
// coordinates writing them out in one database transaction and publishes
// their domain events once that transaction committed.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().Get(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	if err := o.TransitionTo(order.StatusReceived, actor, now); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Orders and dispatches carry a version column; a stale save fails with
//     a ConcurrencyConflict error instead of overwriting a newer state
package postgres

import (
	"context"

	"laundry/internal/adapters/out/postgres/custodyrepo"
	"laundry/internal/adapters/out/postgres/defectrepo"
	"laundry/internal/adapters/out/postgres/dispatchrepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/organizationrepo"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/ddd"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate saved during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool and one event publisher.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
}

// NewGormUnitOfWorkFactory creates a factory. A nil publisher drops events.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db, bus)
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, publisher: publisher}
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates its repositories saved.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then publishes the domain events of
// every tracked aggregate. Publishing never fails the commit.
//
// Returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards the transaction and the tracked aggregates.
//
// Returns gorm.ErrInvalidTransaction when no transaction is active, which the
// deferred rollback after a successful commit ignores.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrganizationRepository() ports.OrganizationRepository {
	return organizationrepo.NewGormOrganizationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OutletRepository() ports.OutletRepository {
	return organizationrepo.NewGormOutletRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return organizationrepo.NewGormUserRepository(uow.conn(), uow)
}

// OrderRepository provides access to order persistence within the unit of work.
// Outside a transaction it runs on the main connection, where the row locks
// GetByItemIDs takes are released immediately.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DispatchRepository() ports.DispatchRepository {
	return dispatchrepo.NewGormDispatchRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) HandoverRepository() ports.HandoverRepository {
	return custodyrepo.NewGormHandoverRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DefectRepository() ports.DefectRepository {
	return defectrepo.NewGormDefectRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate saved within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	var events []ddd.DomainEvent
	for _, t := range tracked {
		if source, ok := t.Aggregate.(ddd.EventSource); ok {
			events = append(events, source.PullEvents()...)
		}
	}

	if len(events) == 0 || uow.publisher == nil {
		return
	}
	uow.publisher.Publish(ctx, events...)
}
