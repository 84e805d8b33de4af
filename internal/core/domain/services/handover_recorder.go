package services

import (
	"time"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/staff"
)

// TeamHandover describes an in-factory transfer between two teams.
type TeamHandover struct {
	ID         kernel.UUID
	ItemID     kernel.UUID
	From       *custody.Stage
	To         custody.Stage
	ReceivedBy *kernel.UUID
}

// HandoverRecorder records in-factory transfers and applies the item stage
// move each transfer implies.
type HandoverRecorder struct{}

// NewHandoverRecorder creates a new HandoverRecorder instance.
func NewHandoverRecorder() HandoverRecorder {
	return HandoverRecorder{}
}

// Record creates the handover and moves the item.
//
// Parameters:
//   - o: the order owning the item
//   - previous: the item's latest handover, nil when it has none
//   - req: the transfer; From must equal previous.ToStage()
//   - actor: the team member handing the item over
//
// Returns:
//   - *custody.Handover: the new link of the custody chain
//   - error: IntegrityError on a chain break, InvalidTransition when the
//     stations are not adjacent, InvalidStageTransition when the item is not
//     ready for the receiving station
func (r HandoverRecorder) Record(
	o *order.Order,
	previous *custody.Handover,
	req TeamHandover,
	actor staff.Actor,
	at time.Time,
) (*custody.Handover, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := actor.RequireIn(o.OrganizationID(), staff.RecordHandovers); err != nil {
		return nil, err
	}
	if req.ReceivedBy != nil {
		if err := req.ReceivedBy.Validate(); err != nil {
			return nil, err
		}
	}

	item, err := o.Item(req.ItemID)
	if err != nil {
		return nil, err
	}

	target, move, err := custody.ImpliedItemMove(req.To, item.Stage())
	if err != nil {
		return nil, err
	}

	h, err := custody.NewHandover(custody.HandoverParams{
		ID:             req.ID,
		OrganizationID: o.OrganizationID(),
		OutletID:       o.OutletID(),
		ItemID:         item.ID(),
		OrderID:        o.ID(),
		From:           req.From,
		To:             req.To,
		HandedOverBy:   actor.UserID(),
		ReceivedBy:     req.ReceivedBy,
	}, previous, at)
	if err != nil {
		return nil, err
	}

	if move {
		if err = o.MoveItemForCustody(item.ID(), target, at); err != nil {
			return nil, err
		}
	}
	return h, nil
}
