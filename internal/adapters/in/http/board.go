package http

import (
	"laundry/internal/adapters/in/ws"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// OutletBoard handles GET /api/v1/outlets/{outletId}/board.
func (s *Server) OutletBoard(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	outletID, err := pathID(c, "outletId")
	if err != nil {
		return err
	}
	if err := requireStaff(actor); err != nil {
		return err
	}

	outlet, err := s.outlets.Get(c.Request().Context(), outletID)
	if err != nil {
		return err
	}
	if err := actor.EnsureTenant(outlet.OrganizationID()); err != nil {
		return err
	}

	return s.board.Serve(c.Response(), c.Request(), ws.OutletRoom(outletID.String()))
}

// OrganizationBoard handles GET /api/v1/organizations/{organizationId}/board.
func (s *Server) OrganizationBoard(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	organizationID, err := pathID(c, "organizationId")
	if err != nil {
		return err
	}
	if err := requireStaff(actor); err != nil {
		return err
	}
	if err := actor.EnsureTenant(organizationID); err != nil {
		return err
	}

	return s.board.Serve(c.Response(), c.Request(), ws.OrganizationRoom(organizationID.String()))
}

func requireStaff(actor staff.Actor) error {
	if actor.Role() == staff.Customer {
		return errs.NewPermissionDeniedError(actor.Role().String(), "watch boards")
	}
	return nil
}
