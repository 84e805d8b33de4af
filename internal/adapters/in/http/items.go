package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/defect"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// UpdateItem handles PUT /api/v1/items/{itemId}.
func (s *Server) UpdateItem(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var body ItemChanges
	if err := bindBody(c, &body); err != nil {
		return err
	}
	price, err := kernel.MoneyFromString(body.UnitPrice)
	if err != nil {
		return err
	}
	weight, err := optionalDecimal(body.WeightKg)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateItemCommand(actor, itemID, commands.ItemChanges{
		Description: body.Description,
		Quantity:    body.Quantity,
		UnitPrice:   price,
		WeightKg:    weight,
		Notes:       body.Notes,
	})
	if err != nil {
		return err
	}
	if err := s.h.UpdateItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AdvanceItem handles POST /api/v1/items/{itemId}/stage.
func (s *Server) AdvanceItem(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var body AdvanceItem
	if err := bindBody(c, &body); err != nil {
		return err
	}
	stage, err := order.ParseStage(body.Stage)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceItemCommand(actor, itemID, stage)
	if err != nil {
		return err
	}
	if err := s.h.AdvanceItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetItemHistory handles GET /api/v1/items/{itemId}/history.
func (s *Server) GetItemHistory(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetItemHistoryQuery(actor, itemID)
	if err != nil {
		return err
	}
	resp, err := s.h.GetItemHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemHistory(resp))
}

// RecordHandover handles POST /api/v1/items/{itemId}/handovers.
func (s *Server) RecordHandover(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var body NewHandover
	if err := bindBody(c, &body); err != nil {
		return err
	}
	from, err := custody.ParseOptionalStage(body.FromStage)
	if err != nil {
		return err
	}
	to, err := custody.ParseStage(body.ToStage)
	if err != nil {
		return err
	}
	receivedBy, err := optionalKernelID("received_by", body.ReceivedBy)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRecordHandoverCommand(actor, id, itemID, from, to, receivedBy)
	if err != nil {
		return err
	}
	if err := s.h.RecordHandover.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// ReportDefect handles POST /api/v1/items/{itemId}/defects.
func (s *Server) ReportDefect(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var body NewDefect
	if err := bindBody(c, &body); err != nil {
		return err
	}
	defectType, err := defect.ParseType(body.DefectType)
	if err != nil {
		return err
	}
	stage, err := custody.ParseStage(body.StageFound)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewReportDefectCommand(actor, id, itemID, defectType, stage, body.Description)
	if err != nil {
		return err
	}
	if err := s.h.ReportDefect.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// ResolveDefect handles POST /api/v1/defects/{defectId}/resolve.
func (s *Server) ResolveDefect(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	defectID, err := pathID(c, "defectId")
	if err != nil {
		return err
	}
	var body ResolveDefect
	if err := bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewResolveDefectCommand(actor, defectID, body.Notes)
	if err != nil {
		return err
	}
	if err := s.h.ResolveDefect.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUnresolvedDefects handles GET /api/v1/organizations/{organizationId}/defects/unresolved.
func (s *Server) ListUnresolvedDefects(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	organizationID, err := pathID(c, "organizationId")
	if err != nil {
		return err
	}
	outletID, err := queryID(c, "outlet_id")
	if err != nil {
		return err
	}

	query, err := queries.NewListUnresolvedDefectsQuery(actor, organizationID, outletID)
	if err != nil {
		return err
	}
	views, err := s.h.ListUnresolvedDefects.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDefects(views))
}
