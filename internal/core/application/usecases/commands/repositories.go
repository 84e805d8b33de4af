// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// domain logic, persistence and commit. Domain events recorded on the way are
// published by the unit of work after the commit.
package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination of repositories it uses.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrganizationRepoFactory provides access to the organization repository within a transaction.
	OrganizationRepoFactory interface {
		OrganizationRepository() ports.OrganizationRepository
	}

	// OutletRepoFactory provides access to the outlet repository within a transaction.
	OutletRepoFactory interface {
		OutletRepository() ports.OutletRepository
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DispatchRepoFactory provides access to the dispatch repository within a transaction.
	DispatchRepoFactory interface {
		DispatchRepository() ports.DispatchRepository
	}

	// HandoverRepoFactory provides access to the custody log within a transaction.
	HandoverRepoFactory interface {
		HandoverRepository() ports.HandoverRepository
	}

	// DefectRepoFactory provides access to the defect repository within a transaction.
	DefectRepoFactory interface {
		DefectRepository() ports.DefectRepository
	}

	// OrganizationUoW manages transactions for tenant administration:
	// organizations, their outlets and users.
	OrganizationUoW interface {
		TxManager
		OrganizationRepoFactory
		OutletRepoFactory
		UserRepoFactory
	}

	// OrganizationUoWFactory creates new organization unit of work instances.
	OrganizationUoWFactory interface {
		Create() OrganizationUoW
	}

	// OrderUoW manages transactions for order operations. Creating an order
	// also reads the organization, outlet and customer it references.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   // ... perform operations
	//   err = uow.OrderRepository().Update(ctx, o)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrganizationRepoFactory
		OutletRepoFactory
		UserRepoFactory
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DispatchUoW manages transactions that move items between outlets and
	// the factory: the dispatch, the orders owning the items and the handovers
	// completion creates.
	DispatchUoW interface {
		TxManager
		OutletRepoFactory
		OrderRepoFactory
		DispatchRepoFactory
		HandoverRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// CustodyUoW manages transactions for in-factory handovers.
	CustodyUoW interface {
		TxManager
		OrderRepoFactory
		HandoverRepoFactory
	}

	// CustodyUoWFactory creates new custody unit of work instances.
	CustodyUoWFactory interface {
		Create() CustodyUoW
	}

	// DefectUoW manages transactions for defect reports.
	DefectUoW interface {
		TxManager
		OrderRepoFactory
		DefectRepoFactory
	}

	// DefectUoWFactory creates new defect unit of work instances.
	DefectUoWFactory interface {
		Create() DefectUoW
	}
)
