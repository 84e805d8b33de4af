package dispatch

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// Endpoint is one end of a dispatch: an outlet of the organization or the factory.
type Endpoint struct {
	outletID *kernel.UUID
}

// Factory returns the factory endpoint.
func Factory() Endpoint {
	return Endpoint{}
}

// AtOutlet returns the endpoint of an outlet.
func AtOutlet(outletID kernel.UUID) (Endpoint, error) {
	if err := outletID.Validate(); err != nil {
		return Endpoint{}, errs.NewValueIsRequiredErrorWithCause("outlet", err)
	}
	return Endpoint{outletID: &outletID}, nil
}

// EndpointFromOutlet maps a nullable outlet column: nil is the factory.
func EndpointFromOutlet(outletID *kernel.UUID) (Endpoint, error) {
	if outletID == nil {
		return Factory(), nil
	}
	return AtOutlet(*outletID)
}

// IsFactory reports whether the endpoint is the factory.
func (e Endpoint) IsFactory() bool {
	return e.outletID == nil
}

// OutletID returns the outlet, nil for the factory.
func (e Endpoint) OutletID() *kernel.UUID {
	return e.outletID
}

func (e Endpoint) String() string {
	if e.IsFactory() {
		return "factory"
	}
	return "outlet " + e.outletID.String()
}

// Direction tells whether items travel into or out of the factory.
type Direction int

const (
	DirectionUnknown Direction = iota
	ToFactory
	FromFactory
)

func (d Direction) String() string {
	switch d {
	case ToFactory:
		return "to_factory"
	case FromFactory:
		return "from_factory"
	default:
		return "unknown"
	}
}

func directionOf(source, destination Endpoint) (Direction, error) {
	switch {
	case source.IsFactory() && destination.IsFactory():
		return DirectionUnknown, errs.NewValueIsInvalidErrorWithCause("destination",
			errors.New("source and destination cannot both be the factory"))
	case !source.IsFactory() && !destination.IsFactory():
		return DirectionUnknown, errs.NewValueIsInvalidErrorWithCause("destination",
			errors.New("one end of a dispatch must be the factory"))
	case destination.IsFactory():
		return ToFactory, nil
	default:
		return FromFactory, nil
	}
}
