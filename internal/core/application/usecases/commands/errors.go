package commands

import (
	"laundry/internal/pkg/errs"
)

var (
	// ErrLocationIsIncomplete is returned when only one GPS coordinate is given.
	ErrLocationIsIncomplete = errs.NewValueIsInvalidErrorWithCause("location",
		errs.NewValueIsRequiredError("latitude and longitude"))

	// ErrActorIsRequired is returned when staff accounts are registered anonymously.
	ErrActorIsRequired = errs.NewValueIsRequiredError("actor")
)
