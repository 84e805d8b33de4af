// Package ddd holds the small building blocks shared by aggregates: domain
// events and the recorder aggregates embed to collect them until the unit of
// work publishes them after commit.
package ddd

import (
	"sync"
	"time"
)

// DomainEvent is a fact recorded by an aggregate during a business operation.
type DomainEvent interface {
	// EventName returns a stable dotted name, e.g. "order.status_changed".
	EventName() string

	// OccurredAt returns when the change happened.
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that record domain events.
type EventSource interface {
	PullEvents() []DomainEvent
}

// BaseEvent carries the fields every event has. Concrete events embed it.
type BaseEvent struct {
	Name string    `json:"event"`
	At   time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent.
func NewBaseEvent(name string, at time.Time) BaseEvent {
	return BaseEvent{Name: name, At: at}
}

// EventName implements DomainEvent.
func (e BaseEvent) EventName() string {
	return e.Name
}

// OccurredAt implements DomainEvent.
func (e BaseEvent) OccurredAt() time.Time {
	return e.At
}

// EventRecorder accumulates events raised by an aggregate.
// The zero value is ready to use.
type EventRecorder struct {
	mu     sync.Mutex
	events []DomainEvent
}

// Record appends an event.
func (r *EventRecorder) Record(event DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events without clearing them.
func (r *EventRecorder) Events() []DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// PullEvents returns the recorded events and clears the recorder.
func (r *EventRecorder) PullEvents() []DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

// Scope tells subscribers which tenant and outlet an event concerns.
// Events embed it next to BaseEvent.
type Scope struct {
	OrganizationID string `json:"organization_id"`
	OutletID       string `json:"outlet_id,omitempty"`
}

// Organization returns the tenant the event belongs to.
func (s Scope) Organization() string {
	return s.OrganizationID
}

// Outlet returns the outlet the event concerns, empty when none.
func (s Scope) Outlet() string {
	return s.OutletID
}

// ScopedEvent is a DomainEvent that carries its Scope.
type ScopedEvent interface {
	DomainEvent
	Organization() string
	Outlet() string
}
