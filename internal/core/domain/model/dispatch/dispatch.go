package dispatch

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/ddd"
	"laundry/internal/pkg/errs"
)

// ErrDispatchIsNotConstructed is returned when a Dispatch was not created through a constructor.
var ErrDispatchIsNotConstructed = errors.New("Dispatch must be created via NewDispatch constructor")

// EventStatusChanged is raised on every dispatch status change, creation included.
const EventStatusChanged = "dispatch.status_changed"

// StatusChangedEvent reports a dispatch status change. From is empty on creation.
type StatusChangedEvent struct {
	ddd.BaseEvent
	ddd.Scope
	DispatchID string   `json:"dispatch_id"`
	Direction  string   `json:"direction"`
	From       string   `json:"from,omitempty"`
	To         string   `json:"to"`
	ItemIDs    []string `json:"item_ids"`
	ActorID    string   `json:"actor_id"`
}

// Dispatch moves a set of items between an outlet and the factory.
//
// Invariants:
//   - exactly one endpoint is the factory
//   - the item list is non-empty and has no duplicates
//   - accepted_at is set once the dispatch was accepted, completed_at only when completed
//
// Cross-aggregate rules (item readiness, tenant of items and outlets, one
// active dispatch per item) are checked by the dispatch coordinator service.
type Dispatch struct {
	id             kernel.UUID
	organizationID kernel.UUID
	source         Endpoint
	destination    Endpoint
	itemIDs        []kernel.UUID
	status         Status
	requestedBy    kernel.UUID
	dispatcherID   *kernel.UUID
	createdAt      time.Time
	acceptedAt     *time.Time
	startedAt      *time.Time
	completedAt    *time.Time
	cancelledAt    *time.Time
	version        int64

	events        ddd.EventRecorder
	isConstructed bool
}

// NewDispatch requests a dispatch of items between source and destination.
func NewDispatch(
	id, organizationID kernel.UUID,
	source, destination Endpoint,
	itemIDs []kernel.UUID,
	requester staff.Actor,
	at time.Time,
) (*Dispatch, error) {
	if err := requester.RequireIn(organizationID, staff.RequestDispatches); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if _, err := directionOf(source, destination); err != nil {
		return nil, err
	}
	if err := validateItems(itemIDs); err != nil {
		return nil, err
	}

	d := &Dispatch{
		id:             id,
		organizationID: organizationID,
		source:         source,
		destination:    destination,
		itemIDs:        append(make([]kernel.UUID, 0, len(itemIDs)), itemIDs...),
		status:         StatusPending,
		requestedBy:    requester.UserID(),
		createdAt:      at,
		version:        1,
		isConstructed:  true,
	}
	d.recordStatusChanged(StatusUnknown, requester.UserID(), at)
	return d, nil
}

// Snapshot carries the persisted state of a dispatch.
type Snapshot struct {
	ID             kernel.UUID
	OrganizationID kernel.UUID
	Source         Endpoint
	Destination    Endpoint
	ItemIDs        []kernel.UUID
	Status         Status
	RequestedBy    kernel.UUID
	DispatcherID   *kernel.UUID
	CreatedAt      time.Time
	AcceptedAt     *time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	Version        int64
}

// RestoreDispatch rebuilds a dispatch from storage.
func RestoreDispatch(s Snapshot) (*Dispatch, error) {
	if err := errors.Join(s.ID.Validate(), s.OrganizationID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	if _, err := directionOf(s.Source, s.Destination); err != nil {
		return nil, err
	}
	if err := validateItems(s.ItemIDs); err != nil {
		return nil, err
	}
	if (s.Status == StatusCompleted) != (s.CompletedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("completed_at",
			fmt.Errorf("completed_at must be set exactly when completed, dispatch is %s", s.Status))
	}
	if s.AcceptedAt == nil && (s.Status == StatusAccepted || s.Status == StatusInTransit || s.Status == StatusCompleted) {
		return nil, errs.NewValueIsRequiredErrorWithCause("accepted_at",
			fmt.Errorf("dispatch is %s", s.Status))
	}

	return &Dispatch{
		id:             s.ID,
		organizationID: s.OrganizationID,
		source:         s.Source,
		destination:    s.Destination,
		itemIDs:        append(make([]kernel.UUID, 0, len(s.ItemIDs)), s.ItemIDs...),
		status:         s.Status,
		requestedBy:    s.RequestedBy,
		dispatcherID:   s.DispatcherID,
		createdAt:      s.CreatedAt,
		acceptedAt:     s.AcceptedAt,
		startedAt:      s.StartedAt,
		completedAt:    s.CompletedAt,
		cancelledAt:    s.CancelledAt,
		version:        s.Version,
		isConstructed:  true,
	}, nil
}

// Validate ensures the dispatch was built through a constructor.
func (d *Dispatch) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDispatchIsNotConstructed
	}
	return nil
}

func (d *Dispatch) ID() kernel.UUID {
	return d.id
}

func (d *Dispatch) OrganizationID() kernel.UUID {
	return d.organizationID
}

func (d *Dispatch) Source() Endpoint {
	return d.source
}

func (d *Dispatch) Destination() Endpoint {
	return d.destination
}

// ItemIDs returns a copy of the dispatched item ids.
func (d *Dispatch) ItemIDs() []kernel.UUID {
	return append(make([]kernel.UUID, 0, len(d.itemIDs)), d.itemIDs...)
}

func (d *Dispatch) Status() Status {
	return d.status
}

func (d *Dispatch) RequestedBy() kernel.UUID {
	return d.requestedBy
}

// DispatcherID is the dispatcher who accepted the request, nil until then.
func (d *Dispatch) DispatcherID() *kernel.UUID {
	return d.dispatcherID
}

func (d *Dispatch) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Dispatch) AcceptedAt() *time.Time {
	return d.acceptedAt
}

func (d *Dispatch) StartedAt() *time.Time {
	return d.startedAt
}

func (d *Dispatch) CompletedAt() *time.Time {
	return d.completedAt
}

func (d *Dispatch) CancelledAt() *time.Time {
	return d.cancelledAt
}

func (d *Dispatch) Version() int64 {
	return d.version
}

// MarkPersisted records the version written by the repository.
func (d *Dispatch) MarkPersisted(version int64) {
	d.version = version
}

// PullEvents returns and clears the recorded events.
func (d *Dispatch) PullEvents() []ddd.DomainEvent {
	return d.events.PullEvents()
}

// Direction tells whether items travel into or out of the factory.
func (d *Dispatch) Direction() Direction {
	if d.destination.IsFactory() {
		return ToFactory
	}
	return FromFactory
}

// OutletID returns the outlet end of the dispatch.
func (d *Dispatch) OutletID() kernel.UUID {
	if d.destination.IsFactory() {
		return *d.source.OutletID()
	}
	return *d.destination.OutletID()
}

// RequiredItemStage is the stage every item must be in when the dispatch is
// created: received for trips to the factory, awaiting_dispatch_return for
// trips back to an outlet.
func (d *Dispatch) RequiredItemStage() order.Stage {
	if d.Direction() == ToFactory {
		return order.StageReceived
	}
	return order.StageAwaitingDispatchReturn
}

// HandoverStage is the custody station completing the dispatch hands items to.
func (d *Dispatch) HandoverStage() custody.Stage {
	if d.Direction() == ToFactory {
		return custody.StageWashing
	}
	return custody.StageOutletReturn
}

// Contains reports whether the item travels with this dispatch.
func (d *Dispatch) Contains(itemID kernel.UUID) bool {
	for _, id := range d.itemIDs {
		if id.IsEqual(itemID) {
			return true
		}
	}
	return false
}

// Accept assigns the dispatcher and sets accepted_at.
func (d *Dispatch) Accept(dispatcher staff.Actor, at time.Time) error {
	if err := dispatcher.RequireIn(d.organizationID, staff.AcceptDispatches); err != nil {
		return err
	}
	if err := d.status.CanTransitionTo(StatusAccepted); err != nil {
		return err
	}

	dispatcherID := dispatcher.UserID()
	acceptedAt := at
	d.dispatcherID = &dispatcherID
	d.acceptedAt = &acceptedAt
	d.changeStatus(StatusAccepted, dispatcher.UserID(), at)
	return nil
}

// Start marks the items as on the road.
func (d *Dispatch) Start(actor staff.Actor, at time.Time) error {
	if err := d.ensureCarrier(actor); err != nil {
		return err
	}
	if err := d.status.CanTransitionTo(StatusInTransit); err != nil {
		return err
	}

	startedAt := at
	d.startedAt = &startedAt
	d.changeStatus(StatusInTransit, actor.UserID(), at)
	return nil
}

// Complete marks the dispatch delivered. The handovers it implies are
// created by the dispatch coordinator in the same transaction.
func (d *Dispatch) Complete(actor staff.Actor, at time.Time) error {
	if err := d.ensureCarrier(actor); err != nil {
		return err
	}
	if err := d.status.CanTransitionTo(StatusCompleted); err != nil {
		return err
	}

	completedAt := at
	d.completedAt = &completedAt
	d.changeStatus(StatusCompleted, actor.UserID(), at)
	return nil
}

// Cancel withdraws a dispatch that has not left yet.
func (d *Dispatch) Cancel(actor staff.Actor, at time.Time) error {
	if err := actor.RequireIn(d.organizationID, staff.RequestDispatches); err != nil {
		return err
	}
	if err := d.status.CanTransitionTo(StatusCancelled); err != nil {
		return err
	}

	cancelledAt := at
	d.cancelledAt = &cancelledAt
	d.changeStatus(StatusCancelled, actor.UserID(), at)
	return nil
}

// ensureCarrier lets the assigned dispatcher and admins move the dispatch on.
func (d *Dispatch) ensureCarrier(actor staff.Actor) error {
	if err := actor.RequireIn(d.organizationID, staff.AcceptDispatches); err != nil {
		return err
	}
	if actor.Role().IsAdmin() || d.dispatcherID == nil || d.dispatcherID.IsEqual(actor.UserID()) {
		return nil
	}
	return errs.NewPermissionDeniedError(actor.Role().String(), "move a dispatch assigned to another dispatcher")
}

func (d *Dispatch) changeStatus(to Status, actorID kernel.UUID, at time.Time) {
	from := d.status
	d.status = to
	d.recordStatusChanged(from, actorID, at)
}

func (d *Dispatch) recordStatusChanged(from Status, actorID kernel.UUID, at time.Time) {
	itemIDs := make([]string, 0, len(d.itemIDs))
	for _, id := range d.itemIDs {
		itemIDs = append(itemIDs, id.String())
	}

	fromCode := ""
	if from != StatusUnknown {
		fromCode = from.String()
	}

	d.events.Record(StatusChangedEvent{
		BaseEvent:  ddd.NewBaseEvent(EventStatusChanged, at),
		Scope:      ddd.Scope{OrganizationID: d.organizationID.String(), OutletID: d.OutletID().String()},
		DispatchID: d.id.String(),
		Direction:  d.Direction().String(),
		From:       fromCode,
		To:         d.status.String(),
		ItemIDs:    itemIDs,
		ActorID:    actorID.String(),
	})
}

func validateItems(itemIDs []kernel.UUID) error {
	if len(itemIDs) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", err)
		}
		if _, ok := seen[id.String()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %s is listed twice", id))
		}
		seen[id.String()] = struct{}{}
	}
	return nil
}
