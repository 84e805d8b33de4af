package dispatch

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status is the lifecycle of a dispatch request.
//
//	pending ─> accepted ─> in_transit ─> completed
//	pending | accepted ─> cancelled
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusAccepted
	StatusInTransit
	StatusCompleted
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusAccepted:  "accepted",
		StatusInTransit: "in_transit",
		StatusCompleted: "completed",
		StatusCancelled: "cancelled",
	}
}

func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusAccepted, StatusCancelled},
		StatusAccepted:  {StatusInTransit, StatusCancelled},
		StatusInTransit: {StatusCompleted},
	}
}

// ParseStatus converts a persisted code into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a dispatch status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects unknown values.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a dispatch status", s))
	}
	return nil
}

// IsActive reports whether the dispatch still holds its items.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusAccepted || s == StatusInTransit
}

// CanTransitionTo checks a move against the adjacency table.
func (s Status) CanTransitionTo(target Status) error {
	for _, next := range statusTransitions()[s] {
		if next == target {
			return nil
		}
	}
	return errs.NewInvalidTransitionError(errs.SubjectDispatchStatus, s.String(), target.String())
}
