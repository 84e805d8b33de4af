package queries

import "laundry/internal/pkg/errs"

// ErrNowIsRequired is returned when a time based query is built without a clock reading.
var ErrNowIsRequired = errs.NewValueIsRequiredError("now")
