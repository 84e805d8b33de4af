package commands

import "time"

// now is the handlers' clock. Domain methods receive the time explicitly.
var now = func() time.Time {
	return time.Now().UTC()
}
