package organization

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// ErrOutletIsNotConstructed is returned when an Outlet was not created through NewOutlet.
var ErrOutletIsNotConstructed = errors.New("Outlet must be created via NewOutlet constructor")

// Outlet is a customer-facing branch of an organization. Items travel between
// outlets and the central factory.
type Outlet struct {
	id             kernel.UUID
	organizationID kernel.UUID
	name           string
	shortName      string
	phone          string
	whatsapp       string
	address        string
	location       *kernel.GeoPoint

	isConstructed bool
}

// NewOutlet creates an outlet. The GPS location is optional.
func NewOutlet(
	id, organizationID kernel.UUID,
	name, shortName, phone, whatsapp, address string,
	location *kernel.GeoPoint,
) (*Outlet, error) {
	o := &Outlet{
		shortName:     strings.TrimSpace(shortName),
		phone:         strings.TrimSpace(phone),
		whatsapp:      strings.TrimSpace(whatsapp),
		address:       strings.TrimSpace(address),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrganization(organizationID),
		o.setName(name),
		o.setLocation(location),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the outlet was built through NewOutlet.
func (o *Outlet) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOutletIsNotConstructed
	}
	return nil
}

func (o *Outlet) ID() kernel.UUID {
	return o.id
}

func (o *Outlet) OrganizationID() kernel.UUID {
	return o.organizationID
}

func (o *Outlet) Name() string {
	return o.name
}

func (o *Outlet) ShortName() string {
	return o.shortName
}

func (o *Outlet) Phone() string {
	return o.phone
}

func (o *Outlet) WhatsApp() string {
	return o.whatsapp
}

func (o *Outlet) Address() string {
	return o.address
}

// Location returns the GPS position, nil when unknown.
func (o *Outlet) Location() *kernel.GeoPoint {
	return o.location
}

func (o *Outlet) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Outlet) setOrganization(organizationID kernel.UUID) error {
	if err := organizationID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("organization", err)
	}
	o.organizationID = organizationID
	return nil
}

func (o *Outlet) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	o.name = name
	return nil
}

func (o *Outlet) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}
