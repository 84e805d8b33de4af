package http

import (
	"fmt"
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateDispatch handles POST /api/v1/dispatches.
func (s *Server) CreateDispatch(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body NewDispatch
	if err := bindBody(c, &body); err != nil {
		return err
	}

	organizationID, err := toKernelID("organization_id", body.OrganizationID)
	if err != nil {
		return err
	}
	source, err := optionalKernelID("source_outlet_id", body.SourceOutletID)
	if err != nil {
		return err
	}
	destination, err := optionalKernelID("destination_outlet_id", body.DestinationOutletID)
	if err != nil {
		return err
	}
	itemIDs, err := toKernelIDs("item_ids", body.ItemIDs)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDispatchCommand(actor, id, organizationID, source, destination, itemIDs)
	if err != nil {
		return err
	}
	if err := s.h.CreateDispatch.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// ChangeDispatch handles POST /api/v1/dispatches/{dispatchId}/{action} for
// accept, start, complete and cancel.
func (s *Server) ChangeDispatch(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	dispatchID, err := pathID(c, "dispatchId")
	if err != nil {
		return err
	}

	var handler CommandHandler[commands.DispatchCommand]
	switch action := c.Param("action"); action {
	case "accept":
		handler = s.h.AcceptDispatch
	case "start":
		handler = s.h.StartDispatch
	case "complete":
		handler = s.h.CompleteDispatch
	case "cancel":
		handler = s.h.CancelDispatch
	default:
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown dispatch action %q", action))
	}

	cmd, err := commands.NewDispatchCommand(actor, dispatchID)
	if err != nil {
		return err
	}
	if err := handler.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListActiveDispatches handles GET /api/v1/organizations/{organizationId}/dispatches/active.
func (s *Server) ListActiveDispatches(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	organizationID, err := pathID(c, "organizationId")
	if err != nil {
		return err
	}

	query, err := queries.NewListActiveDispatchesQuery(actor, organizationID)
	if err != nil {
		return err
	}
	views, err := s.h.ListActiveDispatches.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDispatches(views))
}
