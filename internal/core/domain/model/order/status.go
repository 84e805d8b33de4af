package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Main path (each step may only move to the next one):
//
//	pending ─> received ─> awaiting_pickup ─> in_transit_to_factory ─>
//	received_at_factory ─> in_processing ─> qc_packaging ─>
//	awaiting_return_dispatch ─> in_transit_to_outlet ─> received_at_outlet ─>
//	ready_for_pickup ─> completed
//
// Side states:
//   - cancelled: reachable from every non-terminal status, terminal
//   - on_hold: reachable from every non-terminal status except itself; from
//     on_hold the order resumes to the status it was suspended in, or is
//     cancelled
//
// Terminal statuses are completed and cancelled.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota
	StatusPending
	StatusReceived
	StatusAwaitingPickup
	StatusInTransitToFactory
	StatusReceivedAtFactory
	StatusInProcessing
	StatusQCPackaging
	StatusAwaitingReturnDispatch
	StatusInTransitToOutlet
	StatusReceivedAtOutlet
	StatusReadyForPickup
	StatusCompleted
	StatusCancelled
	StatusOnHold
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:                "unknown",
		StatusPending:                "pending",
		StatusReceived:               "received",
		StatusAwaitingPickup:         "awaiting_pickup",
		StatusInTransitToFactory:     "in_transit_to_factory",
		StatusReceivedAtFactory:      "received_at_factory",
		StatusInProcessing:           "in_processing",
		StatusQCPackaging:            "qc_packaging",
		StatusAwaitingReturnDispatch: "awaiting_return_dispatch",
		StatusInTransitToOutlet:      "in_transit_to_outlet",
		StatusReceivedAtOutlet:       "received_at_outlet",
		StatusReadyForPickup:         "ready_for_pickup",
		StatusCompleted:              "completed",
		StatusCancelled:              "cancelled",
		StatusOnHold:                 "on_hold",
	}
}

// forwardStatus is the adjacency table of the main path.
func forwardStatus() map[Status]Status {
	return map[Status]Status{
		StatusPending:                StatusReceived,
		StatusReceived:               StatusAwaitingPickup,
		StatusAwaitingPickup:         StatusInTransitToFactory,
		StatusInTransitToFactory:     StatusReceivedAtFactory,
		StatusReceivedAtFactory:      StatusInProcessing,
		StatusInProcessing:           StatusQCPackaging,
		StatusQCPackaging:            StatusAwaitingReturnDispatch,
		StatusAwaitingReturnDispatch: StatusInTransitToOutlet,
		StatusInTransitToOutlet:      StatusReceivedAtOutlet,
		StatusReceivedAtOutlet:       StatusReadyForPickup,
		StatusReadyForPickup:         StatusCompleted,
	}
}

// ParseStatus converts a persisted code into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// String returns the persisted code.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects StatusUnknown and out of range values.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusOnHold {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Next returns the status that follows s on the main path.
func (s Status) Next() (Status, bool) {
	next, ok := forwardStatus()[s]
	return next, ok
}

// CanTransitionTo checks a move against the adjacency table. held is the
// status the order was suspended in and only matters when s is on_hold.
func (s Status) CanTransitionTo(target Status, held Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	invalid := errs.NewInvalidTransitionError(errs.SubjectOrderStatus, s.String(), target.String())

	switch {
	case s.IsTerminal():
		return invalid
	case target == StatusCancelled:
		return nil
	case target == StatusOnHold:
		if s == StatusOnHold {
			return invalid
		}
		return nil
	case s == StatusOnHold:
		if target != held {
			return invalid
		}
		return nil
	}

	if next, ok := s.Next(); ok && next == target {
		return nil
	}
	return invalid
}
