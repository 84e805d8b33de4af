package cmd

import (
	"fmt"
	"log/slog"

	httpin "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/in/worker"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	idempotency ports.IdempotencyStore
	payments    commands.PaymentPolicy
	schedule    jobs.Schedule
}

// NewCompositionRoot wires handlers over one database pool. publisher
// receives the events of committed units of work.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	idempotency ports.IdempotencyStore,
) (CompositionRoot, error) {
	tolerance, err := kernel.MoneyFromString(cfg.OverpaymentTolerance)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("PAYMENT_OVERPAYMENT_TOLERANCE: %w", err)
	}

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB, publisher),
		idempotency: idempotency,
		payments: commands.PaymentPolicy{
			OverpaymentTolerance: tolerance,
			IdempotencyTTL:       cfg.IdempotencyTTL,
		},
		schedule: jobs.Schedule{
			CustodyAudit:       cfg.CustodyAuditSchedule,
			CustodyAuditWindow: cfg.CustodyAuditWindow,
			OverdueOrders:      cfg.OverdueOrdersSchedule,
		},
	}, nil
}

func (c *CompositionRoot) organizationUoWFactory() commands.OrganizationUoWFactory {
	return FuncOrganizationUoWFactory(func() commands.OrganizationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) custodyUoWFactory() commands.CustodyUoWFactory {
	return FuncCustodyUoWFactory(func() commands.CustodyUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) defectUoWFactory() commands.DefectUoWFactory {
	return FuncDefectUoWFactory(func() commands.DefectUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrganizationCommandHandler() commands.CreateOrganizationCommandHandler {
	return commands.NewCreateOrganizationCommandHandler(c.organizationUoWFactory())
}

func (c *CompositionRoot) CreateRegisterOutletCommandHandler() commands.RegisterOutletCommandHandler {
	return commands.NewRegisterOutletCommandHandler(c.organizationUoWFactory())
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.organizationUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApplyDiscountCommandHandler() commands.ApplyDiscountCommandHandler {
	return commands.NewApplyDiscountCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.orderUoWFactory(), c.idempotency, c.payments)
}

func (c *CompositionRoot) CreateRefundOrderCommandHandler() commands.RefundOrderCommandHandler {
	return commands.NewRefundOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateItemCommandHandler() commands.UpdateItemCommandHandler {
	return commands.NewUpdateItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceItemCommandHandler() commands.AdvanceItemCommandHandler {
	return commands.NewAdvanceItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordHandoverCommandHandler() commands.RecordHandoverCommandHandler {
	return commands.NewRecordHandoverCommandHandler(c.custodyUoWFactory(), services.NewHandoverRecorder())
}

func (c *CompositionRoot) CreateAuditCustodyCommandHandler() commands.AuditCustodyCommandHandler {
	return commands.NewAuditCustodyCommandHandler(c.custodyUoWFactory())
}

func (c *CompositionRoot) CreateReportDefectCommandHandler() commands.ReportDefectCommandHandler {
	return commands.NewReportDefectCommandHandler(c.defectUoWFactory())
}

func (c *CompositionRoot) CreateResolveDefectCommandHandler() commands.ResolveDefectCommandHandler {
	return commands.NewResolveDefectCommandHandler(c.defectUoWFactory())
}

func (c *CompositionRoot) CreateCreateDispatchCommandHandler() commands.CreateDispatchCommandHandler {
	return commands.NewCreateDispatchCommandHandler(c.dispatchUoWFactory(), services.NewDispatchCoordinator())
}

func (c *CompositionRoot) CreateAcceptDispatchCommandHandler() commands.AcceptDispatchCommandHandler {
	return commands.NewAcceptDispatchCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateStartDispatchCommandHandler() commands.StartDispatchCommandHandler {
	return commands.NewStartDispatchCommandHandler(c.dispatchUoWFactory(), services.NewDispatchCoordinator())
}

func (c *CompositionRoot) CreateCompleteDispatchCommandHandler() commands.CompleteDispatchCommandHandler {
	return commands.NewCompleteDispatchCommandHandler(c.dispatchUoWFactory(), services.NewDispatchCoordinator())
}

func (c *CompositionRoot) CreateCancelDispatchCommandHandler() commands.CancelDispatchCommandHandler {
	return commands.NewCancelDispatchCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetItemHistoryQueryHandler() queries.GetItemHistoryQueryHandler {
	return queries.NewGetItemHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListActiveDispatchesQueryHandler() queries.ListActiveDispatchesQueryHandler {
	return queries.NewListActiveDispatchesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUnresolvedDefectsQueryHandler() queries.ListUnresolvedDefectsQueryHandler {
	return queries.NewListUnresolvedDefectsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOverdueOrdersQueryHandler() queries.ListOverdueOrdersQueryHandler {
	return queries.NewListOverdueOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateResolveActorQueryHandler() queries.ResolveActorQueryHandler {
	return queries.NewResolveActorQueryHandler(c.gormDB)
}

// HTTPHandlers collects every handler the HTTP adapter routes to.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrganization:    c.CreateCreateOrganizationCommandHandler(),
		RegisterOutlet:        c.CreateRegisterOutletCommandHandler(),
		RegisterUser:          c.CreateRegisterUserCommandHandler(),
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		TransitionOrder:       c.CreateTransitionOrderCommandHandler(),
		ApplyDiscount:         c.CreateApplyDiscountCommandHandler(),
		RecordPayment:         c.CreateRecordPaymentCommandHandler(),
		RefundOrder:           c.CreateRefundOrderCommandHandler(),
		UpdateItem:            c.CreateUpdateItemCommandHandler(),
		AdvanceItem:           c.CreateAdvanceItemCommandHandler(),
		RecordHandover:        c.CreateRecordHandoverCommandHandler(),
		ReportDefect:          c.CreateReportDefectCommandHandler(),
		ResolveDefect:         c.CreateResolveDefectCommandHandler(),
		CreateDispatch:        c.CreateCreateDispatchCommandHandler(),
		AcceptDispatch:        c.CreateAcceptDispatchCommandHandler(),
		StartDispatch:         c.CreateStartDispatchCommandHandler(),
		CompleteDispatch:      c.CreateCompleteDispatchCommandHandler(),
		CancelDispatch:        c.CreateCancelDispatchCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		GetItemHistory:        c.CreateGetItemHistoryQueryHandler(),
		ListActiveDispatches:  c.CreateListActiveDispatchesQueryHandler(),
		ListUnresolvedDefects: c.CreateListUnresolvedDefectsQueryHandler(),
		ListOverdueOrders:     c.CreateListOverdueOrdersQueryHandler(),
		ResolveActor:          c.CreateResolveActorQueryHandler(),
	}
}

// Outlets looks outlets up outside any transaction.
func (c *CompositionRoot) Outlets() ports.OutletRepository {
	return c.uowFactory.Create().OutletRepository()
}

// Users looks users up outside any transaction.
func (c *CompositionRoot) Users() ports.UserRepository {
	return c.uowFactory.Create().UserRepository()
}

// CreateJobManager builds the scheduler. Jobs run as a platform super admin
// that exists only in memory.
func (c *CompositionRoot) CreateJobManager(tracker jobs.JobTracker, logger *slog.Logger) (*jobs.JobManager, error) {
	system, err := staff.NewActor(kernel.NewUUID(), nil, staff.SuperAdmin)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(
		c.CreateAuditCustodyCommandHandler(),
		c.CreateListOverdueOrdersQueryHandler(),
		system,
		c.schedule,
		tracker,
		logger,
	), nil
}

func (c *CompositionRoot) CreateReadyForPickupHandler(sender worker.Sender, logger *slog.Logger) *worker.ReadyForPickupHandler {
	return worker.NewReadyForPickupHandler(c.Users(), sender, logger)
}

type FuncOrganizationUoWFactory func() commands.OrganizationUoW

func (f FuncOrganizationUoWFactory) Create() commands.OrganizationUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncCustodyUoWFactory func() commands.CustodyUoW

func (f FuncCustodyUoWFactory) Create() commands.CustodyUoW {
	return f()
}

type FuncDefectUoWFactory func() commands.DefectUoW

func (f FuncDefectUoWFactory) Create() commands.DefectUoW {
	return f()
}
