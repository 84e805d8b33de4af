package custody

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/ddd"
	"laundry/internal/pkg/errs"
)

// ErrHandoverIsNotConstructed is returned when a Handover was not created through a constructor.
var ErrHandoverIsNotConstructed = errors.New("Handover must be created via NewHandover constructor")

// EventHandoverRecorded is raised for every custody change.
const EventHandoverRecorded = "custody.handover_recorded"

// HandoverRecordedEvent is raised when an item changes hands.
type HandoverRecordedEvent struct {
	ddd.BaseEvent
	ddd.Scope
	HandoverID   string `json:"handover_id"`
	ItemID       string `json:"item_id"`
	OrderID      string `json:"order_id"`
	FromStage    string `json:"from_stage,omitempty"`
	ToStage      string `json:"to_stage"`
	HandedOverBy string `json:"handed_over_by"`
}

// Handover is one link of an item's custody chain. Handovers are immutable
// once recorded; a broken chain is reported, never repaired.
type Handover struct {
	id             kernel.UUID
	organizationID kernel.UUID
	itemID         kernel.UUID
	orderID        kernel.UUID
	fromStage      *Stage
	toStage        Stage
	handedOverBy   kernel.UUID
	receivedBy     *kernel.UUID
	handedOverAt   time.Time
	receivedAt     *time.Time

	events        ddd.EventRecorder
	isConstructed bool
}

// HandoverParams describes a new handover.
type HandoverParams struct {
	ID             kernel.UUID
	OrganizationID kernel.UUID
	OutletID       kernel.UUID
	ItemID         kernel.UUID
	OrderID        kernel.UUID
	From           *Stage
	To             Stage
	HandedOverBy   kernel.UUID
	ReceivedBy     *kernel.UUID
}

// NewHandover records a custody change after checking that it continues the
// item's chain. previous is the item's latest handover, nil if there is none.
func NewHandover(p HandoverParams, previous *Handover, at time.Time) (*Handover, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OrganizationID.Validate(),
		p.ItemID.Validate(),
		p.OrderID.Validate(),
		p.HandedOverBy.Validate(),
	); err != nil {
		return nil, err
	}
	if err := EnsureContinues(p.ItemID, previous, p.From); err != nil {
		return nil, err
	}
	if err := p.To.CanFollow(p.From); err != nil {
		return nil, err
	}

	h := &Handover{
		id:             p.ID,
		organizationID: p.OrganizationID,
		itemID:         p.ItemID,
		orderID:        p.OrderID,
		fromStage:      p.From,
		toStage:        p.To,
		handedOverBy:   p.HandedOverBy,
		handedOverAt:   at,
		isConstructed:  true,
	}
	if p.ReceivedBy != nil {
		receivedAt := at
		h.receivedBy = p.ReceivedBy
		h.receivedAt = &receivedAt
	}

	from := ""
	if p.From != nil {
		from = p.From.String()
	}
	h.events.Record(HandoverRecordedEvent{
		BaseEvent:    ddd.NewBaseEvent(EventHandoverRecorded, at),
		Scope:        ddd.Scope{OrganizationID: p.OrganizationID.String(), OutletID: outletString(p.OutletID)},
		HandoverID:   h.id.String(),
		ItemID:       h.itemID.String(),
		OrderID:      h.orderID.String(),
		FromStage:    from,
		ToStage:      h.toStage.String(),
		HandedOverBy: h.handedOverBy.String(),
	})

	return h, nil
}

// HandoverSnapshot carries the persisted state of a handover.
type HandoverSnapshot struct {
	ID             kernel.UUID
	OrganizationID kernel.UUID
	ItemID         kernel.UUID
	OrderID        kernel.UUID
	FromStage      *Stage
	ToStage        Stage
	HandedOverBy   kernel.UUID
	ReceivedBy     *kernel.UUID
	HandedOverAt   time.Time
	ReceivedAt     *time.Time
}

// RestoreHandover rebuilds a handover from storage. Chain continuity is not
// checked here; VerifyChain does that over the whole history.
func RestoreHandover(s HandoverSnapshot) (*Handover, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.OrganizationID.Validate(),
		s.ItemID.Validate(),
		s.ToStage.Validate(),
	); err != nil {
		return nil, err
	}
	if (s.ReceivedBy == nil) != (s.ReceivedAt == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("received_at",
			errors.New("received_by and received_at are set together"))
	}

	return &Handover{
		id:             s.ID,
		organizationID: s.OrganizationID,
		itemID:         s.ItemID,
		orderID:        s.OrderID,
		fromStage:      s.FromStage,
		toStage:        s.ToStage,
		handedOverBy:   s.HandedOverBy,
		receivedBy:     s.ReceivedBy,
		handedOverAt:   s.HandedOverAt,
		receivedAt:     s.ReceivedAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the handover was built through a constructor.
func (h *Handover) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHandoverIsNotConstructed
	}
	return nil
}

func (h *Handover) ID() kernel.UUID {
	return h.id
}

func (h *Handover) OrganizationID() kernel.UUID {
	return h.organizationID
}

func (h *Handover) ItemID() kernel.UUID {
	return h.itemID
}

func (h *Handover) OrderID() kernel.UUID {
	return h.orderID
}

// FromStage is nil only for the first handover of an item.
func (h *Handover) FromStage() *Stage {
	return h.fromStage
}

func (h *Handover) ToStage() Stage {
	return h.toStage
}

func (h *Handover) HandedOverBy() kernel.UUID {
	return h.handedOverBy
}

func (h *Handover) ReceivedBy() *kernel.UUID {
	return h.receivedBy
}

func (h *Handover) HandedOverAt() time.Time {
	return h.handedOverAt
}

func (h *Handover) ReceivedAt() *time.Time {
	return h.receivedAt
}

// PullEvents returns and clears the recorded events.
func (h *Handover) PullEvents() []ddd.DomainEvent {
	return h.events.PullEvents()
}

// EnsureContinues checks that a handover starting at from can follow previous.
// The first handover of an item has no from stage; every later one starts
// where the previous ended.
func EnsureContinues(itemID kernel.UUID, previous *Handover, from *Stage) error {
	switch {
	case previous == nil && from == nil:
		return nil
	case previous == nil:
		return errs.NewIntegrityError("custody chain", itemID.String(),
			fmt.Errorf("first handover must not have a from stage, got %s", from))
	case from == nil:
		return errs.NewIntegrityError("custody chain", itemID.String(),
			fmt.Errorf("handover must start at %s", previous.toStage))
	case *from != previous.toStage:
		return errs.NewIntegrityError("custody chain", itemID.String(),
			fmt.Errorf("handover starts at %s but the item was last handed to %s", from, previous.toStage))
	}
	return nil
}

// VerifyChain checks a whole custody history in handed_over_at order and
// reports every break it finds.
func VerifyChain(itemID kernel.UUID, handovers []*Handover) error {
	chain := append(make([]*Handover, 0, len(handovers)), handovers...)
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].handedOverAt.Before(chain[j].handedOverAt)
	})

	var (
		problems []error
		previous *Handover
	)
	for _, h := range chain {
		if !h.itemID.IsEqual(itemID) {
			problems = append(problems, errs.NewIntegrityError("custody chain", itemID.String(),
				fmt.Errorf("handover %s belongs to item %s", h.id, h.itemID)))
			continue
		}
		if err := EnsureContinues(itemID, previous, h.fromStage); err != nil {
			problems = append(problems, err)
		}
		previous = h
	}

	return errors.Join(problems...)
}

func outletString(id kernel.UUID) string {
	if id.Validate() != nil {
		return ""
	}
	return id.String()
}
