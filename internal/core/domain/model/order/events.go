package order

import (
	"time"

	"laundry/internal/pkg/ddd"
)

// Event names raised by the Order aggregate.
const (
	EventOrderCreated     = "order.created"
	EventStatusChanged    = "order.status_changed"
	EventItemStageChanged = "order.item_stage_changed"
	EventPaymentRecorded  = "order.payment_recorded"
)

// CreatedEvent is raised when an order is taken.
type CreatedEvent struct {
	ddd.BaseEvent
	ddd.Scope
	OrderID   string `json:"order_id"`
	BagNumber string `json:"bag_number"`
	Status    string `json:"status"`
}

// StatusChangedEvent is raised on every order status transition.
type StatusChangedEvent struct {
	ddd.BaseEvent
	ddd.Scope
	OrderID    string `json:"order_id"`
	BagNumber  string `json:"bag_number"`
	CustomerID string `json:"customer_id,omitempty"`
	From       string `json:"from"`
	To         string `json:"to"`
	ActorID    string `json:"actor_id"`
}

// ItemStageChangedEvent is raised when an item moves to another stage.
// ActorID is empty when the move was implied by a handover or dispatch.
type ItemStageChangedEvent struct {
	ddd.BaseEvent
	ddd.Scope
	OrderID string `json:"order_id"`
	ItemID  string `json:"item_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	ActorID string `json:"actor_id,omitempty"`
}

// PaymentRecordedEvent is raised for every ledger entry, refunds included.
type PaymentRecordedEvent struct {
	ddd.BaseEvent
	ddd.Scope
	OrderID       string `json:"order_id"`
	PaymentID     string `json:"payment_id"`
	Kind          string `json:"kind"`
	Method        string `json:"method"`
	Amount        string `json:"amount"`
	Applied       string `json:"applied"`
	ChangeDue     string `json:"change_due"`
	AmountPaid    string `json:"amount_paid"`
	PaymentStatus string `json:"payment_status"`
}

func (o *Order) scope() ddd.Scope {
	return ddd.Scope{
		OrganizationID: o.organizationID.String(),
		OutletID:       o.outletID.String(),
	}
}

func (o *Order) recordStatusChanged(from, to Status, actorID string, at time.Time) {
	customerID := ""
	if o.customerID != nil {
		customerID = o.customerID.String()
	}
	o.events.Record(StatusChangedEvent{
		BaseEvent:  ddd.NewBaseEvent(EventStatusChanged, at),
		Scope:      o.scope(),
		OrderID:    o.id.String(),
		BagNumber:  o.bagNumber,
		CustomerID: customerID,
		From:       from.String(),
		To:         to.String(),
		ActorID:    actorID,
	})
}

func (o *Order) recordItemStageChanged(item *Item, from Stage, actorID string, at time.Time) {
	o.events.Record(ItemStageChangedEvent{
		BaseEvent: ddd.NewBaseEvent(EventItemStageChanged, at),
		Scope:     o.scope(),
		OrderID:   o.id.String(),
		ItemID:    item.id.String(),
		From:      from.String(),
		To:        item.stage.String(),
		ActorID:   actorID,
	})
}

func (o *Order) recordPayment(p *Payment) {
	o.events.Record(PaymentRecordedEvent{
		BaseEvent:     ddd.NewBaseEvent(EventPaymentRecorded, p.paidAt),
		Scope:         o.scope(),
		OrderID:       o.id.String(),
		PaymentID:     p.id.String(),
		Kind:          string(p.kind),
		Method:        p.method.String(),
		Amount:        p.amount.String(),
		Applied:       p.applied.String(),
		ChangeDue:     p.changeDue.String(),
		AmountPaid:    o.amountPaid.String(),
		PaymentStatus: o.paymentStatus.String(),
	})
}
