package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its items and payment ledger.
//
// Staff of the order's organization may read it, a customer only their own.
//
// Example:
//
//	query, err := NewGetOrderQuery(actor, orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s outstanding %s\n", view.BagNumber, view.AmountOutstanding)
type GetOrderQuery struct {
	actor   staff.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(actor staff.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() staff.Actor {
	return q.actor
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the order read model. Money fields are already
// rounded to two decimal places.
type GetOrderQueryResponse struct {
	ID                kernel.UUID
	OrganizationID    kernel.UUID
	OutletID          kernel.UUID
	CustomerID        *kernel.UUID
	CreatedBy         kernel.UUID
	BagNumber         string
	InvoiceNumber     string
	Status            order.Status
	HeldStatus        order.Status
	PaymentStatus     order.PaymentStatus
	Subtotal          kernel.Money
	DiscountAmount    kernel.Money
	TotalAmount       kernel.Money
	AmountPaid        kernel.Money
	AmountOutstanding kernel.Money
	TurnaroundHours   int
	DueAt             *time.Time
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
	Version           int64
	Items             []OrderItemView
	Payments          []OrderPaymentView
}

// OrderItemView is one garment of an order.
type OrderItemView struct {
	ID             kernel.UUID
	Description    string
	Quantity       int
	UnitPrice      kernel.Money
	Amount         kernel.Money
	WeightKg       *decimal.Decimal
	Notes          string
	Stage          order.Stage
	StageChangedAt time.Time
}

// OrderPaymentView is one ledger entry. Refunds carry a negative Applied.
type OrderPaymentView struct {
	ID            kernel.UUID
	Kind          order.PaymentKind
	Method        order.PaymentMethod
	Amount        kernel.Money
	Applied       kernel.Money
	ChangeDue     kernel.Money
	TransactionID string
	Network       order.MobileNetwork
	ReceivedBy    kernel.UUID
	PaidAt        time.Time
}
