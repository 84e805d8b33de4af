package commands

import (
	"context"
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"
)

// CreateOrderCommandHandler handles order creation.
// Checks the tenant can take orders, the outlet belongs to it and the customer
// exists, then builds the Order aggregate with its items and persists it.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrAlreadyExists) {
//	    // bag or invoice number already used in this organization
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a new handler for processing order creation.
// Requires an OrderUoWFactory for transactional order persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command within a transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	org, err := uow.OrganizationRepository().Get(ctx, command.OrganizationID())
	if err != nil {
		return err
	}
	if err = org.EnsureAcceptsOrders(); err != nil {
		return err
	}

	outlet, err := uow.OutletRepository().Get(ctx, command.OutletID())
	if err != nil {
		return err
	}
	if err = kernel.EnsureSameTenant(org.ID(), kernel.RefOf("outlet", outlet)); err != nil {
		return err
	}

	details := command.Details()
	if details.CustomerID != nil {
		if err = h.ensureCustomer(ctx, uow, *details.CustomerID); err != nil {
			return err
		}
	}

	at := now()
	o, err := order.NewOrder(command.OrderID(), org.ID(), outlet.ID(), command.Actor(), details.CustomerID,
		details.BagNumber, details.InvoiceNumber, details.TurnaroundHours, details.Notes, at)
	if err != nil {
		return err
	}

	for _, item := range command.Items() {
		if _, err = o.AddItem(item.ID, item.Description, item.Quantity, item.UnitPrice,
			item.WeightKg, item.Notes, at); err != nil {
			return fmt.Errorf("item %s: %w", item.ID, err)
		}
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateOrderCommandHandler) ensureCustomer(ctx context.Context, uow OrderUoW, customerID kernel.UUID) error {
	customer, err := uow.UserRepository().Get(ctx, customerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause("customer_id", err)
	}
	if err != nil {
		return err
	}
	if customer.Role() != staff.Customer {
		return errs.NewValueIsInvalidErrorWithCause("customer_id",
			fmt.Errorf("user %s is a %s, not a customer", customerID, customer.Role()))
	}
	return nil
}
