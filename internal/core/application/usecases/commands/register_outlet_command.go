package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrRegisterOutletCommandIsNotConstructed = errors.New(
	"RegisterOutletCommand must be created via NewRegisterOutletCommand constructor",
)

// OutletDetails are the descriptive fields of an outlet.
type OutletDetails struct {
	Name      string
	ShortName string
	Phone     string
	WhatsApp  string
	Address   string

	// Location is optional; both coordinates or none.
	Latitude  *float64
	Longitude *float64
}

// RegisterOutletCommand adds a branch to an organization.
type RegisterOutletCommand struct { //nolint:recvcheck //using for validation
	actor          staff.Actor
	outletID       kernel.UUID
	organizationID kernel.UUID
	details        OutletDetails
	location       *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewRegisterOutletCommand validates identifiers and the optional GPS location.
func NewRegisterOutletCommand(
	actor staff.Actor,
	outletID, organizationID kernel.UUID,
	details OutletDetails,
) (RegisterOutletCommand, error) {
	if err := errors.Join(actor.Validate(), outletID.Validate(), organizationID.Validate()); err != nil {
		return RegisterOutletCommand{}, err
	}

	var location *kernel.GeoPoint
	switch {
	case details.Latitude != nil && details.Longitude != nil:
		point, err := kernel.NewGeoPoint(*details.Latitude, *details.Longitude)
		if err != nil {
			return RegisterOutletCommand{}, err
		}
		location = &point
	case details.Latitude != nil || details.Longitude != nil:
		return RegisterOutletCommand{}, ErrLocationIsIncomplete
	}

	return RegisterOutletCommand{
		actor:          actor,
		outletID:       outletID,
		organizationID: organizationID,
		details:        details,
		location:       location,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterOutletCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOutletCommandIsNotConstructed)
}

func (c RegisterOutletCommand) Actor() staff.Actor {
	return c.actor
}

func (c RegisterOutletCommand) OutletID() kernel.UUID {
	return c.outletID
}

func (c RegisterOutletCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

func (c RegisterOutletCommand) Details() OutletDetails {
	return c.details
}

// Location returns the parsed GPS location, nil when none was given.
func (c RegisterOutletCommand) Location() *kernel.GeoPoint {
	return c.location
}
