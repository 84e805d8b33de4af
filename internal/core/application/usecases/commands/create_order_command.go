package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// NewItem is one line of a new order.
type NewItem struct {
	ID          kernel.UUID
	Description string
	Quantity    int
	UnitPrice   kernel.Money
	WeightKg    *decimal.Decimal
	Notes       string
}

// OrderDetails are the descriptive fields of a new order.
type OrderDetails struct {
	CustomerID      *kernel.UUID
	BagNumber       string
	InvoiceNumber   string
	TurnaroundHours int
	Notes           string
}

// CreateOrderCommand represents a drop-off at an outlet: the order with its
// initial items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, kernel.NewUUID(), orgID, outletID, OrderDetails{
//	    BagNumber: "B-1042", InvoiceNumber: "INV-2026-0042", TurnaroundHours: 48,
//	}, []NewItem{{ID: kernel.NewUUID(), Description: "Shirt", Quantity: 3, UnitPrice: kernel.MustMoney("5.00")}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor          staff.Actor
	orderID        kernel.UUID
	organizationID kernel.UUID
	outletID       kernel.UUID
	details        OrderDetails
	items          []NewItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and the presence of the bag and
// invoice numbers. Item rules are enforced by the Order aggregate.
func NewCreateOrderCommand(
	actor staff.Actor,
	orderID, organizationID, outletID kernel.UUID,
	details OrderDetails,
	items []NewItem,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		actor:          actor,
		organizationID: organizationID,
		outletID:       outletID,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		orderCommand.setOrderID(orderID),
		organizationID.Validate(),
		outletID.Validate(),
		orderCommand.setDetails(details),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() staff.Actor {
	return c.actor
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

func (c CreateOrderCommand) OutletID() kernel.UUID {
	return c.outletID
}

func (c CreateOrderCommand) Details() OrderDetails {
	return c.details
}

// Items returns the initial order lines.
func (c CreateOrderCommand) Items() []NewItem {
	return append(make([]NewItem, 0, len(c.items)), c.items...)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDetails(details OrderDetails) error {
	if strings.TrimSpace(details.BagNumber) == "" {
		return errs.NewValueIsRequiredError("bag_number")
	}

	c.details = details
	return nil
}

func (c *CreateOrderCommand) setItems(items []NewItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.ID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", err)
		}
	}

	c.items = append(make([]NewItem, 0, len(items)), items...)
	return nil
}
