package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item was not created through a constructor.
var ErrItemIsNotConstructed = errors.New("Item must be created via Order.AddItem")

// Item is one garment or bundle of an order, tracked individually through
// the factory. Items are entities inside the Order aggregate and are only
// changed through Order methods.
//
// Invariants:
//   - quantity >= 1
//   - amount == unit_price * quantity
//   - organization equals the order's organization
type Item struct {
	id             kernel.UUID
	organizationID kernel.UUID
	orderID        kernel.UUID
	description    string
	quantity       int
	unitPrice      kernel.Money
	amount         kernel.Money
	weightKg       *decimal.Decimal
	notes          string
	stage          Stage
	stageChangedAt time.Time
	createdAt      time.Time

	isConstructed bool
}

// ItemSnapshot carries the persisted state of an item for RestoreOrder.
type ItemSnapshot struct {
	ID             kernel.UUID
	OrganizationID kernel.UUID
	OrderID        kernel.UUID
	Description    string
	Quantity       int
	UnitPrice      kernel.Money
	WeightKg       *decimal.Decimal
	Notes          string
	Stage          Stage
	StageChangedAt time.Time
	CreatedAt      time.Time
}

func newItem(
	id, organizationID, orderID kernel.UUID,
	description string,
	quantity int,
	unitPrice kernel.Money,
	weightKg *decimal.Decimal,
	notes string,
	at time.Time,
) (*Item, error) {
	return RestoreItem(ItemSnapshot{
		ID:             id,
		OrganizationID: organizationID,
		OrderID:        orderID,
		Description:    description,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		WeightKg:       weightKg,
		Notes:          notes,
		Stage:          StageReceived,
		StageChangedAt: at,
		CreatedAt:      at,
	})
}

// RestoreItem rebuilds an item from storage. The amount is always
// recomputed from unit price and quantity.
func RestoreItem(s ItemSnapshot) (*Item, error) {
	item := &Item{
		notes:          strings.TrimSpace(s.Notes),
		stageChangedAt: s.StageChangedAt,
		createdAt:      s.CreatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		s.ID.Validate(),
		s.OrganizationID.Validate(),
		s.OrderID.Validate(),
		s.Stage.Validate(),
		item.setDescription(s.Description),
		item.setPricing(s.Quantity, s.UnitPrice),
		item.setWeight(s.WeightKg),
	); err != nil {
		return nil, err
	}

	item.id = s.ID
	item.organizationID = s.OrganizationID
	item.orderID = s.OrderID
	item.stage = s.Stage
	return item, nil
}

// Validate ensures the item was built through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) OrganizationID() kernel.UUID {
	return i.organizationID
}

func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

func (i *Item) Description() string {
	return i.description
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Amount is unit price times quantity.
func (i *Item) Amount() kernel.Money {
	return i.amount
}

// WeightKg returns the weight, nil when it was not measured.
func (i *Item) WeightKg() *decimal.Decimal {
	return i.weightKg
}

func (i *Item) Notes() string {
	return i.notes
}

func (i *Item) Stage() Stage {
	return i.stage
}

func (i *Item) StageChangedAt() time.Time {
	return i.stageChangedAt
}

func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

// IsEqual compares items by identifier.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

func (i *Item) moveTo(target Stage, at time.Time) error {
	if err := i.stage.CanMoveTo(target); err != nil {
		return err
	}
	i.stage = target
	i.stageChangedAt = at
	return nil
}

func (i *Item) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	i.description = description
	return nil
}

func (i *Item) setPricing(quantity int, unitPrice kernel.Money) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit_price", fmt.Errorf("%s is negative", unitPrice))
	}
	i.quantity = quantity
	i.unitPrice = unitPrice
	i.amount = unitPrice.Mul(quantity)
	return nil
}

func (i *Item) setWeight(weightKg *decimal.Decimal) error {
	if weightKg != nil && !weightKg.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight_kg", fmt.Errorf("%s is not positive", weightKg))
	}
	i.weightKg = weightKg
	return nil
}
