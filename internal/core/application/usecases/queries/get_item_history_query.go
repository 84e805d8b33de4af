package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/defect"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrGetItemHistoryQueryIsNotConstructed = errors.New(
	"GetItemHistoryQuery must be created via NewGetItemHistoryQuery constructor",
)

// GetItemHistoryQuery reads the custody chain and the defect reports of one
// item, oldest first.
type GetItemHistoryQuery struct {
	actor  staff.Actor
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetItemHistoryQuery(actor staff.Actor, itemID kernel.UUID) (GetItemHistoryQuery, error) {
	if err := errors.Join(actor.Validate(), itemID.Validate()); err != nil {
		return GetItemHistoryQuery{}, err
	}

	return GetItemHistoryQuery{
		actor:  actor,
		itemID: itemID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetItemHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetItemHistoryQueryIsNotConstructed)
}

func (q GetItemHistoryQuery) Actor() staff.Actor {
	return q.actor
}

func (q GetItemHistoryQuery) ItemID() kernel.UUID {
	return q.itemID
}

type GetItemHistoryQueryResponse struct {
	ItemID      kernel.UUID
	OrderID     kernel.UUID
	Description string
	Stage       order.Stage
	Handovers   []HandoverView
	Defects     []DefectView
}

// HandoverView is one link of the custody chain. FromStage is nil for the
// first handover of the item.
type HandoverView struct {
	ID           kernel.UUID
	FromStage    *custody.Stage
	ToStage      custody.Stage
	HandedOverBy kernel.UUID
	ReceivedBy   *kernel.UUID
	HandedOverAt time.Time
	ReceivedAt   *time.Time
}

type DefectView struct {
	ID              kernel.UUID
	ItemID          kernel.UUID
	OrderID         kernel.UUID
	OutletID        kernel.UUID
	Type            defect.Type
	StageFound      custody.Stage
	Description     string
	ReportedBy      kernel.UUID
	ReportedAt      time.Time
	Resolved        bool
	ResolvedBy      *kernel.UUID
	ResolvedAt      *time.Time
	ResolutionNotes string
}
