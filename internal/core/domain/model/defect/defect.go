package defect

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/ddd"
	"laundry/internal/pkg/errs"
)

// ErrDefectIsNotConstructed is returned when a Defect was not created through a constructor.
var ErrDefectIsNotConstructed = errors.New("Defect must be created via Report constructor")

// Type classifies what is wrong with an item.
type Type int

const (
	TypeUnknown Type = iota
	TypeStainNotRemoved
	TypeDamage
	TypeMissingButton
	TypeColorBleed
	TypeShrinkage
	TypeOther
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:         "unknown",
		TypeStainNotRemoved: "stain_not_removed",
		TypeDamage:          "damage",
		TypeMissingButton:   "missing_button",
		TypeColorBleed:      "color_bleed",
		TypeShrinkage:       "shrinkage",
		TypeOther:           "other",
	}
}

// ParseType converts a persisted code into a Type.
func ParseType(s string) (Type, error) {
	for t, str := range getTypeStrings() {
		if str == s && t != TypeUnknown {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("defect_type", fmt.Errorf("%q is not a defect type", s))
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects unknown values.
func (t Type) Validate() error {
	if t <= TypeUnknown || t > TypeOther {
		return errs.NewValueIsInvalidErrorWithCause("defect_type", fmt.Errorf("%d is not a defect type", t))
	}
	return nil
}

// Event names raised by defects.
const (
	EventReported = "defect.reported"
	EventResolved = "defect.resolved"
)

// ReportedEvent is raised when a defect is found.
type ReportedEvent struct {
	ddd.BaseEvent
	ddd.Scope
	DefectID   string `json:"defect_id"`
	ItemID     string `json:"item_id"`
	OrderID    string `json:"order_id"`
	DefectType string `json:"defect_type"`
	StageFound string `json:"stage_found"`
	ReportedBy string `json:"reported_by"`
}

// ResolvedEvent is raised when a defect is closed.
type ResolvedEvent struct {
	ddd.BaseEvent
	ddd.Scope
	DefectID   string `json:"defect_id"`
	ItemID     string `json:"item_id"`
	ResolvedBy string `json:"resolved_by"`
}

// Defect is a problem found on an item during processing.
//
// The resolution fields (resolved flag, resolver, timestamp, notes) are set
// together or not at all, and a defect is resolved at most once.
type Defect struct {
	id              kernel.UUID
	organizationID  kernel.UUID
	outletID        kernel.UUID
	itemID          kernel.UUID
	orderID         kernel.UUID
	defectType      Type
	stageFound      custody.Stage
	description     string
	reportedBy      kernel.UUID
	reportedAt      time.Time
	resolved        bool
	resolvedBy      *kernel.UUID
	resolvedAt      *time.Time
	resolutionNotes string

	events        ddd.EventRecorder
	isConstructed bool
}

// Report records a defect on an item of o. Items that left the workflow
// (picked_up, damaged) cannot get new defects.
func Report(
	id kernel.UUID,
	o *order.Order,
	itemID kernel.UUID,
	defectType Type,
	stageFound custody.Stage,
	description string,
	reporter staff.Actor,
	at time.Time,
) (*Defect, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := reporter.RequireIn(o.OrganizationID(), staff.ReportDefects); err != nil {
		return nil, err
	}

	item, err := o.Item(itemID)
	if err != nil {
		return nil, err
	}
	if item.Stage().IsTerminal() {
		return nil, errs.NewValueIsInvalidErrorWithCause("item",
			fmt.Errorf("item %s is %s", itemID, item.Stage()))
	}

	description = strings.TrimSpace(description)
	if err = errors.Join(id.Validate(), defectType.Validate(), stageFound.Validate()); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}

	d := &Defect{
		id:             id,
		organizationID: o.OrganizationID(),
		outletID:       o.OutletID(),
		itemID:         itemID,
		orderID:        o.ID(),
		defectType:     defectType,
		stageFound:     stageFound,
		description:    description,
		reportedBy:     reporter.UserID(),
		reportedAt:     at,
		isConstructed:  true,
	}
	d.events.Record(ReportedEvent{
		BaseEvent:  ddd.NewBaseEvent(EventReported, at),
		Scope:      d.scope(),
		DefectID:   d.id.String(),
		ItemID:     d.itemID.String(),
		OrderID:    d.orderID.String(),
		DefectType: d.defectType.String(),
		StageFound: d.stageFound.String(),
		ReportedBy: d.reportedBy.String(),
	})
	return d, nil
}

// Snapshot carries the persisted state of a defect.
type Snapshot struct {
	ID              kernel.UUID
	OrganizationID  kernel.UUID
	OutletID        kernel.UUID
	ItemID          kernel.UUID
	OrderID         kernel.UUID
	Type            Type
	StageFound      custody.Stage
	Description     string
	ReportedBy      kernel.UUID
	ReportedAt      time.Time
	Resolved        bool
	ResolvedBy      *kernel.UUID
	ResolvedAt      *time.Time
	ResolutionNotes string
}

// Restore rebuilds a defect from storage.
func Restore(s Snapshot) (*Defect, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.OrganizationID.Validate(),
		s.ItemID.Validate(),
		s.Type.Validate(),
		s.StageFound.Validate(),
	); err != nil {
		return nil, err
	}

	complete := s.ResolvedBy != nil && s.ResolvedAt != nil && s.ResolutionNotes != ""
	empty := s.ResolvedBy == nil && s.ResolvedAt == nil && s.ResolutionNotes == ""
	if (s.Resolved && !complete) || (!s.Resolved && !empty) {
		return nil, errs.NewValueIsInvalidErrorWithCause("resolved",
			errors.New("resolution fields must be set together with the resolved flag"))
	}

	return &Defect{
		id:              s.ID,
		organizationID:  s.OrganizationID,
		outletID:        s.OutletID,
		itemID:          s.ItemID,
		orderID:         s.OrderID,
		defectType:      s.Type,
		stageFound:      s.StageFound,
		description:     s.Description,
		reportedBy:      s.ReportedBy,
		reportedAt:      s.ReportedAt,
		resolved:        s.Resolved,
		resolvedBy:      s.ResolvedBy,
		resolvedAt:      s.ResolvedAt,
		resolutionNotes: s.ResolutionNotes,
		isConstructed:   true,
	}, nil
}

// Resolve closes the defect. Notes are mandatory.
func (d *Defect) Resolve(resolver staff.Actor, notes string, at time.Time) error {
	if err := resolver.RequireIn(d.organizationID, staff.ResolveDefects); err != nil {
		return err
	}
	if d.resolved {
		return errs.NewInvalidTransitionError(errs.SubjectDefect, "resolved", "resolved")
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return errs.NewValueIsRequiredError("resolution_notes")
	}

	resolvedBy := resolver.UserID()
	resolvedAt := at
	d.resolved = true
	d.resolvedBy = &resolvedBy
	d.resolvedAt = &resolvedAt
	d.resolutionNotes = notes

	d.events.Record(ResolvedEvent{
		BaseEvent:  ddd.NewBaseEvent(EventResolved, at),
		Scope:      d.scope(),
		DefectID:   d.id.String(),
		ItemID:     d.itemID.String(),
		ResolvedBy: resolvedBy.String(),
	})
	return nil
}

// Validate ensures the defect was built through a constructor.
func (d *Defect) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDefectIsNotConstructed
	}
	return nil
}

func (d *Defect) ID() kernel.UUID {
	return d.id
}

func (d *Defect) OrganizationID() kernel.UUID {
	return d.organizationID
}

func (d *Defect) OutletID() kernel.UUID {
	return d.outletID
}

func (d *Defect) ItemID() kernel.UUID {
	return d.itemID
}

func (d *Defect) OrderID() kernel.UUID {
	return d.orderID
}

func (d *Defect) Type() Type {
	return d.defectType
}

func (d *Defect) StageFound() custody.Stage {
	return d.stageFound
}

func (d *Defect) Description() string {
	return d.description
}

func (d *Defect) ReportedBy() kernel.UUID {
	return d.reportedBy
}

func (d *Defect) ReportedAt() time.Time {
	return d.reportedAt
}

func (d *Defect) IsResolved() bool {
	return d.resolved
}

func (d *Defect) ResolvedBy() *kernel.UUID {
	return d.resolvedBy
}

func (d *Defect) ResolvedAt() *time.Time {
	return d.resolvedAt
}

func (d *Defect) ResolutionNotes() string {
	return d.resolutionNotes
}

// PullEvents returns and clears the recorded events.
func (d *Defect) PullEvents() []ddd.DomainEvent {
	return d.events.PullEvents()
}

func (d *Defect) scope() ddd.Scope {
	scope := ddd.Scope{OrganizationID: d.organizationID.String()}
	if d.outletID.Validate() == nil {
		scope.OutletID = d.outletID.String()
	}
	return scope
}
