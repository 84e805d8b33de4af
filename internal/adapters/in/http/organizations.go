package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"

	"github.com/labstack/echo/v4"
)

// CreateOrganization handles POST /api/v1/organizations.
func (s *Server) CreateOrganization(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body NewOrganization
	if err := bindBody(c, &body); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrganizationCommand(actor, id, body.Name, body.Slug, body.Email, body.Phone)
	if err != nil {
		return err
	}
	if err := s.h.CreateOrganization.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// RegisterOutlet handles POST /api/v1/organizations/{organizationId}/outlets.
func (s *Server) RegisterOutlet(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	organizationID, err := pathID(c, "organizationId")
	if err != nil {
		return err
	}
	var body NewOutlet
	if err := bindBody(c, &body); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterOutletCommand(actor, id, organizationID, commands.OutletDetails{
		Name:      body.Name,
		ShortName: body.ShortName,
		Phone:     body.Phone,
		WhatsApp:  body.WhatsApp,
		Address:   body.Address,
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
	})
	if err != nil {
		return err
	}
	if err := s.h.RegisterOutlet.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// RegisterUser handles POST /api/v1/users. Anonymous callers may only
// register themselves as customers; the command enforces it.
func (s *Server) RegisterUser(c echo.Context) error {
	var body NewUser
	if err := bindBody(c, &body); err != nil {
		return err
	}
	role, err := staff.ParseRole(body.Role)
	if err != nil {
		return err
	}
	organizationID, err := optionalKernelID("organization_id", body.OrganizationID)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(optionalActor(c), id, organizationID, role, commands.UserDetails{
		Email:     body.Email,
		Phone:     body.Phone,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Address:   body.Address,
	})
	if err != nil {
		return err
	}
	if err := s.h.RegisterUser.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}
