package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrRefundOrderCommandIsNotConstructed = errors.New(
	"RefundOrderCommand must be created via NewRefundOrderCommand constructor",
)

// RefundOrderCommand returns everything paid on a cancelled order.
type RefundOrderCommand struct { //nolint:recvcheck //using for validation
	actor    staff.Actor
	orderID  kernel.UUID
	refundID kernel.UUID
	request  order.RefundRequest

	guard guard.ConstructorGuard
}

func NewRefundOrderCommand(
	actor staff.Actor,
	orderID, refundID kernel.UUID,
	method order.PaymentMethod,
	transactionID string,
	network order.MobileNetwork,
) (RefundOrderCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		orderID.Validate(),
		refundID.Validate(),
		order.ValidatePaymentDetails(method, transactionID, network),
	); err != nil {
		return RefundOrderCommand{}, err
	}

	return RefundOrderCommand{
		actor:    actor,
		orderID:  orderID,
		refundID: refundID,
		request: order.RefundRequest{
			ID:            refundID,
			Method:        method,
			TransactionID: transactionID,
			Network:       network,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RefundOrderCommand) Validate() error {
	return c.guard.Validate(ErrRefundOrderCommandIsNotConstructed)
}

func (c RefundOrderCommand) Actor() staff.Actor {
	return c.actor
}

func (c RefundOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RefundOrderCommand) RefundID() kernel.UUID {
	return c.refundID
}

func (c RefundOrderCommand) Request() order.RefundRequest {
	return c.request
}
