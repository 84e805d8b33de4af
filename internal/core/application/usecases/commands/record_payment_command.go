package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// Tender is the money handed over at the counter.
type Tender struct {
	Method         order.PaymentMethod
	Amount         kernel.Money
	TransactionID  string
	Network        order.MobileNetwork
	IdempotencyKey string
}

// RecordPaymentCommand records a payment against an order.
//
// The idempotency key is optional. When set, replaying the same key for the
// same order fails with AlreadyExists instead of charging twice.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	actor     staff.Actor
	orderID   kernel.UUID
	paymentID kernel.UUID
	tender    Tender

	guard guard.ConstructorGuard
}

func NewRecordPaymentCommand(
	actor staff.Actor,
	orderID, paymentID kernel.UUID,
	tender Tender,
) (RecordPaymentCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		orderID.Validate(),
		paymentID.Validate(),
		order.ValidatePaymentDetails(tender.Method, tender.TransactionID, tender.Network),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	tender.IdempotencyKey = strings.TrimSpace(tender.IdempotencyKey)
	return RecordPaymentCommand{
		actor:     actor,
		orderID:   orderID,
		paymentID: paymentID,
		tender:    tender,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) Actor() staff.Actor {
	return c.actor
}

func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RecordPaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

func (c RecordPaymentCommand) Tender() Tender {
	return c.tender
}

// IdempotencyScope is the key reserved in the idempotency store, empty when
// the caller sent no key.
func (c RecordPaymentCommand) IdempotencyScope() string {
	if c.tender.IdempotencyKey == "" {
		return ""
	}
	return "payment:" + c.orderID.String() + ":" + c.tender.IdempotencyKey
}
