package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/ddd"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for one customer drop-off: its items, their
// workflow stages and the payment ledger.
//
// Order follows these invariants:
//   - every item belongs to the order's organization
//   - total_amount == sum(item amounts) - discount_amount
//   - discount_amount <= sum(item amounts)
//   - amount_paid <= total_amount, and amount_paid == sum(applied payments)
//   - completed_at is set if and only if the status is completed
//   - completed requires every item to be picked_up or damaged
//
// Every accepted mutation leaves the aggregate dirty; the repository bumps the
// version on save and rejects the save when the stored version moved on.
type Order struct {
	id              kernel.UUID
	organizationID  kernel.UUID
	outletID        kernel.UUID
	customerID      *kernel.UUID
	createdBy       kernel.UUID
	bagNumber       string
	invoiceNumber   string
	status          Status
	heldStatus      Status
	paymentStatus   PaymentStatus
	items           []*Item
	payments        []*Payment
	discountAmount  kernel.Money
	totalAmount     kernel.Money
	amountPaid      kernel.Money
	turnaroundHours int
	dueAt           *time.Time
	notes           string
	createdAt       time.Time
	updatedAt       time.Time
	completedAt     *time.Time
	version         int64

	events        ddd.EventRecorder
	isConstructed bool
}

// NewOrder takes a new order at an outlet.
//
// Orders created by staff start received (the bag is physically at the
// counter); orders created by customers start pending. When a customer
// creates the order the customer id defaults to the creator.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), orgID, outletID, attendant, &customerID,
//	    "B-1042", "INV-2026-0042", 48, "", time.Now())
func NewOrder(
	id, organizationID, outletID kernel.UUID,
	creator staff.Actor,
	customerID *kernel.UUID,
	bagNumber, invoiceNumber string,
	turnaroundHours int,
	notes string,
	at time.Time,
) (*Order, error) {
	if err := creator.Require(staff.CreateOrders); err != nil {
		return nil, err
	}
	if creator.Role() != staff.Customer {
		if err := creator.EnsureTenant(organizationID); err != nil {
			return nil, err
		}
	}

	status := StatusReceived
	if creator.Role() == staff.Customer {
		status = StatusPending
		if customerID == nil {
			userID := creator.UserID()
			customerID = &userID
		}
	}

	o := &Order{
		customerID:     customerID,
		createdBy:      creator.UserID(),
		status:         status,
		paymentStatus:  PaymentPending,
		items:          make([]*Item, 0),
		payments:       make([]*Payment, 0),
		discountAmount: kernel.ZeroMoney(),
		totalAmount:    kernel.ZeroMoney(),
		amountPaid:     kernel.ZeroMoney(),
		notes:          strings.TrimSpace(notes),
		createdAt:      at,
		updatedAt:      at,
		version:        1,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrganization(organizationID),
		o.setOutlet(outletID),
		o.setBagNumber(bagNumber),
		o.setInvoiceNumber(invoiceNumber),
		o.setTurnaround(turnaroundHours, at),
	); err != nil {
		return nil, err
	}

	o.events.Record(CreatedEvent{
		BaseEvent: ddd.NewBaseEvent(EventOrderCreated, at),
		Scope:     o.scope(),
		OrderID:   o.id.String(),
		BagNumber: o.bagNumber,
		Status:    o.status.String(),
	})

	return o, nil
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID              kernel.UUID
	OrganizationID  kernel.UUID
	OutletID        kernel.UUID
	CustomerID      *kernel.UUID
	CreatedBy       kernel.UUID
	BagNumber       string
	InvoiceNumber   string
	Status          Status
	HeldStatus      Status
	PaymentStatus   PaymentStatus
	Items           []*Item
	Payments        []*Payment
	DiscountAmount  kernel.Money
	AmountPaid      kernel.Money
	TurnaroundHours int
	DueAt           *time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
	Version         int64
}

// RestoreOrder rebuilds an order from storage and re-checks the invariants
// that span items and payments. Totals are recomputed from the items.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		customerID:      s.CustomerID,
		createdBy:       s.CreatedBy,
		heldStatus:      s.HeldStatus,
		discountAmount:  s.DiscountAmount,
		amountPaid:      s.AmountPaid,
		turnaroundHours: s.TurnaroundHours,
		dueAt:           s.DueAt,
		notes:           s.Notes,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		completedAt:     s.CompletedAt,
		version:         s.Version,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setOrganization(s.OrganizationID),
		o.setOutlet(s.OutletID),
		o.setBagNumber(s.BagNumber),
		o.setInvoiceNumber(s.InvoiceNumber),
		o.setStatus(s.Status, s.HeldStatus, s.CompletedAt),
		s.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}
	o.paymentStatus = s.PaymentStatus

	for _, item := range s.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if err := kernel.EnsureSameTenant(o.organizationID, kernel.RefOf("item", item)); err != nil {
			return nil, err
		}
	}
	o.items = append(make([]*Item, 0, len(s.Items)), s.Items...)

	applied := kernel.ZeroMoney()
	for _, p := range s.Payments {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		applied = applied.Add(p.Applied())
	}
	o.payments = append(make([]*Payment, 0, len(s.Payments)), s.Payments...)

	if !applied.Equal(o.amountPaid) {
		return nil, errs.NewIntegrityError("payment ledger", o.id.String(),
			fmt.Errorf("applied payments %s differ from amount paid %s", applied, o.amountPaid))
	}

	total, err := o.computeTotal(o.discountAmount)
	if err != nil {
		return nil, err
	}
	o.totalAmount = total

	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) OrganizationID() kernel.UUID {
	return o.organizationID
}

func (o *Order) OutletID() kernel.UUID {
	return o.outletID
}

// CustomerID returns the customer, nil for walk-in orders without an account.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

func (o *Order) BagNumber() string {
	return o.bagNumber
}

func (o *Order) InvoiceNumber() string {
	return o.invoiceNumber
}

func (o *Order) Status() Status {
	return o.status
}

// HeldStatus is the status the order resumes to; StatusUnknown unless on hold.
func (o *Order) HeldStatus() Status {
	return o.heldStatus
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Items returns the order's items. The slice is a copy; the items are not.
func (o *Order) Items() []*Item {
	return append(make([]*Item, 0, len(o.items)), o.items...)
}

// Payments returns the payment ledger in recording order.
func (o *Order) Payments() []*Payment {
	return append(make([]*Payment, 0, len(o.payments)), o.payments...)
}

func (o *Order) DiscountAmount() kernel.Money {
	return o.discountAmount
}

func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

func (o *Order) AmountPaid() kernel.Money {
	return o.amountPaid
}

// AmountOutstanding is total_amount - amount_paid.
func (o *Order) AmountOutstanding() kernel.Money {
	return o.totalAmount.Sub(o.amountPaid)
}

// Subtotal is the sum of item amounts before discount.
func (o *Order) Subtotal() kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, item := range o.items {
		subtotal = subtotal.Add(item.amount)
	}
	return subtotal
}

func (o *Order) TurnaroundHours() int {
	return o.turnaroundHours
}

// DueAt is created_at plus the turnaround, nil when no turnaround was promised.
func (o *Order) DueAt() *time.Time {
	return o.dueAt
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// CompletedAt is set only while the status is completed.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// Version is the optimistic lock version the aggregate was loaded with.
func (o *Order) Version() int64 {
	return o.version
}

// MarkPersisted records the version written by the repository.
func (o *Order) MarkPersisted(version int64) {
	o.version = version
}

// PullEvents returns and clears the events recorded since the last pull.
func (o *Order) PullEvents() []ddd.DomainEvent {
	return o.events.PullEvents()
}

// Item looks up an item of this order.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.id.IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("item", itemID.String())
}

// IsOverdue reports whether the order is still open past its due time.
func (o *Order) IsOverdue(now time.Time) bool {
	return o.dueAt != nil && !o.status.IsTerminal() && now.After(*o.dueAt)
}

// AddItem appends an item in stage received and recomputes the totals.
func (o *Order) AddItem(
	id kernel.UUID,
	description string,
	quantity int,
	unitPrice kernel.Money,
	weightKg *decimal.Decimal,
	notes string,
	at time.Time,
) (*Item, error) {
	if err := o.ensureMutable(); err != nil {
		return nil, err
	}
	for _, existing := range o.items {
		if existing.id.IsEqual(id) {
			return nil, errs.NewAlreadyExistsError("item", id.String())
		}
	}

	item, err := newItem(id, o.organizationID, o.id, description, quantity, unitPrice, weightKg, notes, at)
	if err != nil {
		return nil, err
	}

	o.items = append(o.items, item)
	if err = o.recalculate(o.discountAmount); err != nil {
		o.items = o.items[:len(o.items)-1]
		return nil, err
	}
	o.touch(at)
	return item, nil
}

// TransitionTo moves the order to target following the status adjacency table.
func (o *Order) TransitionTo(target Status, actor staff.Actor, at time.Time) error {
	if err := actor.RequireIn(o.organizationID, staff.ManageOrders); err != nil {
		return err
	}
	if err := o.status.CanTransitionTo(target, o.heldStatus); err != nil {
		return err
	}
	if target == StatusCompleted {
		if err := o.ensureItemsFinished(); err != nil {
			return err
		}
	}

	from := o.status
	switch {
	case target == StatusOnHold:
		o.heldStatus = from
	case from == StatusOnHold || target == StatusCancelled:
		o.heldStatus = StatusUnknown
	}

	o.status = target
	if target == StatusCompleted {
		completedAt := at
		o.completedAt = &completedAt
	}

	o.touch(at)
	o.recordStatusChanged(from, target, actor.UserID().String(), at)
	return nil
}

// AdvanceItem moves one item to target on behalf of a staff member. The
// actor's role must be allowed to move items into target.
func (o *Order) AdvanceItem(itemID kernel.UUID, target Stage, actor staff.Actor, at time.Time) error {
	if err := actor.EnsureTenant(o.organizationID); err != nil {
		return err
	}
	if err := ensureRoleMayMoveItemTo(actor.Role(), target); err != nil {
		return err
	}
	return o.moveItem(itemID, target, actor.UserID().String(), at)
}

// MoveItemForCustody moves an item as the consequence of a recorded handover
// or a dispatch milestone. The role check was done on the triggering operation.
func (o *Order) MoveItemForCustody(itemID kernel.UUID, target Stage, at time.Time) error {
	return o.moveItem(itemID, target, "", at)
}

// UpdateItem changes an item's details and pricing. Pricing may change in any
// stage; the amount and the order totals are recomputed.
func (o *Order) UpdateItem(
	itemID kernel.UUID,
	description string,
	quantity int,
	unitPrice kernel.Money,
	weightKg *decimal.Decimal,
	notes string,
	actor staff.Actor,
	at time.Time,
) error {
	if err := actor.RequireIn(o.organizationID, staff.ManageOrders); err != nil {
		return err
	}
	if err := o.ensureMutable(); err != nil {
		return err
	}

	item, err := o.Item(itemID)
	if err != nil {
		return err
	}

	updated := *item
	if err = errors.Join(
		updated.setDescription(description),
		updated.setPricing(quantity, unitPrice),
		updated.setWeight(weightKg),
	); err != nil {
		return err
	}
	updated.notes = strings.TrimSpace(notes)

	previous := *item
	*item = updated
	if err = o.recalculate(o.discountAmount); err != nil {
		*item = previous
		return err
	}

	o.touch(at)
	return nil
}

// ApplyDiscount replaces the order discount. The discount cannot exceed the
// items subtotal and cannot push the total below what was already paid.
func (o *Order) ApplyDiscount(discount kernel.Money, actor staff.Actor, at time.Time) error {
	if err := actor.RequireIn(o.organizationID, staff.ManageOrders); err != nil {
		return err
	}
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discount_amount", fmt.Errorf("%s is negative", discount))
	}

	if err := o.recalculate(discount); err != nil {
		return err
	}
	o.touch(at)
	return nil
}

// PaymentRequest describes a payment tendered at the counter.
type PaymentRequest struct {
	ID             kernel.UUID
	Method         PaymentMethod
	Amount         kernel.Money
	TransactionID  string
	Network        MobileNetwork
	IdempotencyKey string

	// Tolerance is how far the tendered amount may exceed the outstanding
	// balance. The excess is recorded as change due.
	Tolerance kernel.Money
}

// RecordPayment appends a payment to the ledger and reconciles the balance.
//
// Rules:
//   - amount must be positive
//   - cancelled orders take no payments
//   - amount may exceed the outstanding balance by at most Tolerance; only
//     the outstanding part is applied, the rest is change due
//   - payment status becomes paid when nothing is outstanding, partial when
//     something but not everything is paid
func (o *Order) RecordPayment(req PaymentRequest, actor staff.Actor, at time.Time) (*Payment, error) {
	if err := actor.RequireIn(o.organizationID, staff.RecordPayments); err != nil {
		return nil, err
	}
	if err := req.ID.Validate(); err != nil {
		return nil, err
	}
	if o.status == StatusCancelled {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", errors.New("cancelled orders do not take payments"))
	}
	if !req.Amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not positive", req.Amount))
	}
	if err := ValidatePaymentDetails(req.Method, req.TransactionID, req.Network); err != nil {
		return nil, err
	}

	outstanding := o.AmountOutstanding()
	if req.Amount.GreaterThan(outstanding.Add(req.Tolerance)) {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s exceeds the outstanding balance of %s", req.Amount, outstanding))
	}

	applied := req.Amount.Min(outstanding)
	p := &Payment{
		id:             req.ID,
		organizationID: o.organizationID,
		orderID:        o.id,
		kind:           KindPayment,
		method:         req.Method,
		amount:         req.Amount,
		applied:        applied,
		changeDue:      req.Amount.Sub(applied),
		transactionID:  strings.TrimSpace(req.TransactionID),
		network:        req.Network,
		idempotencyKey: strings.TrimSpace(req.IdempotencyKey),
		receivedBy:     actor.UserID(),
		paidAt:         at,
		isConstructed:  true,
	}

	o.payments = append(o.payments, p)
	o.amountPaid = o.amountPaid.Add(applied)
	if o.AmountOutstanding().IsZero() {
		o.paymentStatus = PaymentPaid
	} else {
		o.reconcilePaymentStatus()
	}

	o.touch(at)
	o.recordPayment(p)
	return p, nil
}

// RefundRequest describes how money is returned for a cancelled order.
type RefundRequest struct {
	ID            kernel.UUID
	Method        PaymentMethod
	TransactionID string
	Network       MobileNetwork
}

// Refund returns everything paid on a cancelled order. It appends a negative
// compensating entry equal to amount_paid, resets amount_paid to zero and
// marks the order refunded.
func (o *Order) Refund(req RefundRequest, actor staff.Actor, at time.Time) (*Payment, error) {
	if err := actor.RequireIn(o.organizationID, staff.RecordPayments); err != nil {
		return nil, err
	}
	if err := req.ID.Validate(); err != nil {
		return nil, err
	}
	if o.status != StatusCancelled {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("only cancelled orders can be refunded, order is %s", o.status))
	}
	if !o.amountPaid.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount_paid", errors.New("nothing to refund"))
	}
	if err := ValidatePaymentDetails(req.Method, req.TransactionID, req.Network); err != nil {
		return nil, err
	}

	refund := o.amountPaid.Neg()
	p := &Payment{
		id:             req.ID,
		organizationID: o.organizationID,
		orderID:        o.id,
		kind:           KindRefund,
		method:         req.Method,
		amount:         refund,
		applied:        refund,
		changeDue:      kernel.ZeroMoney(),
		transactionID:  strings.TrimSpace(req.TransactionID),
		network:        req.Network,
		receivedBy:     actor.UserID(),
		paidAt:         at,
		isConstructed:  true,
	}

	o.payments = append(o.payments, p)
	o.amountPaid = kernel.ZeroMoney()
	o.paymentStatus = PaymentRefunded

	o.touch(at)
	o.recordPayment(p)
	return p, nil
}

func (o *Order) moveItem(itemID kernel.UUID, target Stage, actorID string, at time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}

	item, err := o.Item(itemID)
	if err != nil {
		return err
	}

	from := item.stage
	if err = item.moveTo(target, at); err != nil {
		return err
	}

	o.touch(at)
	o.recordItemStageChanged(item, from, actorID, at)
	return nil
}

func (o *Order) ensureMutable() error {
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("order is %s", o.status))
	}
	return nil
}

func (o *Order) ensureItemsFinished() error {
	for _, item := range o.items {
		if item.stage != StagePickedUp && item.stage != StageDamaged {
			return errs.NewInvalidTransitionErrorWithCause(errs.SubjectOrderStatus, o.status.String(),
				StatusCompleted.String(), fmt.Errorf("item %s is %s", item.id, item.stage))
		}
	}
	return nil
}

// computeTotal returns subtotal - discount after checking the money invariants.
func (o *Order) computeTotal(discount kernel.Money) (kernel.Money, error) {
	subtotal := o.Subtotal()
	if discount.GreaterThan(subtotal) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("discount_amount",
			fmt.Errorf("%s exceeds the items subtotal of %s", discount, subtotal))
	}

	total := subtotal.Sub(discount)
	if total.LessThan(o.amountPaid) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("total_amount",
			fmt.Errorf("%s would drop below the amount already paid (%s)", total, o.amountPaid))
	}
	return total, nil
}

func (o *Order) recalculate(discount kernel.Money) error {
	total, err := o.computeTotal(discount)
	if err != nil {
		return err
	}
	o.discountAmount = discount
	o.totalAmount = total
	o.reconcilePaymentStatus()
	return nil
}

// reconcilePaymentStatus keeps payment_status in line with the balance once
// something has been paid. Unpaid and refunded orders keep their status.
func (o *Order) reconcilePaymentStatus() {
	if o.paymentStatus == PaymentRefunded || !o.amountPaid.IsPositive() {
		return
	}
	if o.AmountOutstanding().IsZero() {
		o.paymentStatus = PaymentPaid
		return
	}
	o.paymentStatus = PaymentPartial
}

func (o *Order) touch(at time.Time) {
	o.updatedAt = at
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrganization(organizationID kernel.UUID) error {
	if err := organizationID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("organization", err)
	}
	o.organizationID = organizationID
	return nil
}

func (o *Order) setOutlet(outletID kernel.UUID) error {
	if err := outletID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("outlet", err)
	}
	o.outletID = outletID
	return nil
}

func (o *Order) setBagNumber(bagNumber string) error {
	bagNumber = strings.TrimSpace(bagNumber)
	if bagNumber == "" {
		return errs.NewValueIsRequiredError("bag_number")
	}
	o.bagNumber = bagNumber
	return nil
}

// setInvoiceNumber accepts an empty value; uniqueness applies only to issued numbers.
func (o *Order) setInvoiceNumber(invoiceNumber string) error {
	o.invoiceNumber = strings.TrimSpace(invoiceNumber)
	return nil
}

func (o *Order) setTurnaround(hours int, at time.Time) error {
	if hours < 0 {
		return errs.NewValueIsOutOfRangeError("turnaround_hours", hours, 0, "unbounded")
	}
	o.turnaroundHours = hours
	if hours > 0 {
		due := at.Add(time.Duration(hours) * time.Hour)
		o.dueAt = &due
	}
	return nil
}

func (o *Order) setStatus(status, held Status, completedAt *time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == StatusOnHold {
		if err := held.Validate(); err != nil || held == StatusOnHold || held.IsTerminal() {
			return errs.NewValueIsInvalidErrorWithCause("held_status",
				fmt.Errorf("%s is not a status an order can be held in", held))
		}
	} else if held != StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("held_status",
			fmt.Errorf("only on_hold orders carry a held status, order is %s", status))
	}
	if (status == StatusCompleted) != (completedAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause("completed_at",
			fmt.Errorf("completed_at must be set exactly when the order is completed, order is %s", status))
	}
	o.status = status
	return nil
}
