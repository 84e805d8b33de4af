package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks the aggregates saved through its
// repositories; their domain events are published once Commit succeeded.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and publishes the collected events.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and drops collected events.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	OrganizationRepository() OrganizationRepository
	OutletRepository() OutletRepository
	UserRepository() UserRepository
	OrderRepository() OrderRepository
	DispatchRepository() DispatchRepository
	HandoverRepository() HandoverRepository
	DefectRepository() DefectRepository
}
