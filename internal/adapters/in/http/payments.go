package http

import (
	"net/http"
	"strings"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// RecordPayment handles POST /api/v1/orders/{orderId}/payments. A repeated
// Idempotency-Key for the same order is rejected with 409.
func (s *Server) RecordPayment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	var body NewPayment
	if err := bindBody(c, &body); err != nil {
		return err
	}

	method, err := order.ParsePaymentMethod(body.Method)
	if err != nil {
		return err
	}
	network, err := order.ParseMobileNetwork(body.Network)
	if err != nil {
		return err
	}
	amount, err := kernel.MoneyFromString(body.Amount)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRecordPaymentCommand(actor, orderID, id, commands.Tender{
		Method:         method,
		Amount:         amount,
		TransactionID:  body.TransactionID,
		Network:        network,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey)),
	})
	if err != nil {
		return err
	}
	if err := s.h.RecordPayment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// RefundOrder handles POST /api/v1/orders/{orderId}/refunds.
func (s *Server) RefundOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	var body NewRefund
	if err := bindBody(c, &body); err != nil {
		return err
	}

	method, err := order.ParsePaymentMethod(body.Method)
	if err != nil {
		return err
	}
	network, err := order.ParseMobileNetwork(body.Network)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRefundOrderCommand(actor, orderID, id, method, body.TransactionID, network)
	if err != nil {
		return err
	}
	if err := s.h.RefundOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}
