package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// PaymentPolicy holds the configurable payment rules.
type PaymentPolicy struct {
	// OverpaymentTolerance is how much a tender may exceed the balance.
	OverpaymentTolerance kernel.Money
	// IdempotencyTTL is how long a used idempotency key is remembered.
	IdempotencyTTL time.Duration
}

// RecordPaymentCommandHandler reserves the idempotency key, applies the
// payment to the order and releases the key again if anything fails so the
// client can retry.
type RecordPaymentCommandHandler struct {
	uowFactory  OrderUoWFactory
	idempotency ports.IdempotencyStore
	policy      PaymentPolicy
}

func NewRecordPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	idempotency ports.IdempotencyStore,
	policy PaymentPolicy,
) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
		policy:      policy,
	}
}

func (h RecordPaymentCommandHandler) Handle(ctx context.Context, command RecordPaymentCommand) (err error) {
	if err = command.Validate(); err != nil {
		return err
	}

	if key := command.IdempotencyScope(); key != "" {
		if err = h.idempotency.Reserve(ctx, key, h.policy.IdempotencyTTL); err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = h.idempotency.Release(context.WithoutCancel(ctx), key)
			}
		}()
	}

	return h.apply(ctx, command)
}

func (h RecordPaymentCommandHandler) apply(ctx context.Context, command RecordPaymentCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	tender := command.Tender()
	if _, err = o.RecordPayment(order.PaymentRequest{
		ID:             command.PaymentID(),
		Method:         tender.Method,
		Amount:         tender.Amount,
		TransactionID:  tender.TransactionID,
		Network:        tender.Network,
		IdempotencyKey: tender.IdempotencyKey,
		Tolerance:      h.policy.OverpaymentTolerance,
	}, command.Actor(), now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
