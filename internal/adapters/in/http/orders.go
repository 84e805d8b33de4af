package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body NewOrder
	if err := bindBody(c, &body); err != nil {
		return err
	}

	organizationID, err := toKernelID("organization_id", body.OrganizationID)
	if err != nil {
		return err
	}
	outletID, err := toKernelID("outlet_id", body.OutletID)
	if err != nil {
		return err
	}
	customerID, err := optionalKernelID("customer_id", body.CustomerID)
	if err != nil {
		return err
	}

	items := make([]commands.NewItem, 0, len(body.Items))
	for _, it := range body.Items {
		price, err := kernel.MoneyFromString(it.UnitPrice)
		if err != nil {
			return err
		}
		weight, err := optionalDecimal(it.WeightKg)
		if err != nil {
			return err
		}
		items = append(items, commands.NewItem{
			ID:          kernel.NewUUID(),
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   price,
			WeightKg:    weight,
			Notes:       it.Notes,
		})
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(actor, id, organizationID, outletID, commands.OrderDetails{
		CustomerID:      customerID,
		BagNumber:       body.BagNumber,
		InvoiceNumber:   body.InvoiceNumber,
		TurnaroundHours: body.TurnaroundHours,
		Notes:           body.Notes,
	}, items)
	if err != nil {
		return err
	}
	if err := s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return err
	}
	resp, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(resp))
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	var body TransitionOrder
	if err := bindBody(c, &body); err != nil {
		return err
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(actor, orderID, target)
	if err != nil {
		return err
	}
	if err := s.h.TransitionOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ApplyDiscount handles PUT /api/v1/orders/{orderId}/discount.
func (s *Server) ApplyDiscount(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	var body ApplyDiscount
	if err := bindBody(c, &body); err != nil {
		return err
	}
	discount, err := kernel.MoneyFromString(body.Amount)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApplyDiscountCommand(actor, orderID, discount)
	if err != nil {
		return err
	}
	if err := s.h.ApplyDiscount.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListOverdueOrders handles GET /api/v1/organizations/{organizationId}/orders/overdue.
func (s *Server) ListOverdueOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	organizationID, err := pathID(c, "organizationId")
	if err != nil {
		return err
	}

	query, err := queries.NewListOverdueOrdersQuery(actor, &organizationID, s.clock())
	if err != nil {
		return err
	}
	views, err := s.h.ListOverdueOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOverdueOrders(views))
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "weight_kg is not a number")
	}
	return &d, nil
}
