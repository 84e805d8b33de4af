package commands

import (
	"errors"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/guard"
)

var ErrRecordHandoverCommandIsNotConstructed = errors.New(
	"RecordHandoverCommand must be created via NewRecordHandoverCommand constructor",
)

// RecordHandoverCommand records an item passing from one factory team to
// the next. From is nil only for the item's first handover.
type RecordHandoverCommand struct { //nolint:recvcheck //using for validation
	actor      staff.Actor
	handoverID kernel.UUID
	itemID     kernel.UUID
	from       *custody.Stage
	to         custody.Stage
	receivedBy *kernel.UUID

	guard guard.ConstructorGuard
}

func NewRecordHandoverCommand(
	actor staff.Actor,
	handoverID, itemID kernel.UUID,
	from *custody.Stage,
	to custody.Stage,
	receivedBy *kernel.UUID,
) (RecordHandoverCommand, error) {
	problems := []error{actor.Validate(), handoverID.Validate(), itemID.Validate(), to.Validate()}
	if from != nil {
		problems = append(problems, from.Validate())
	}
	if receivedBy != nil {
		problems = append(problems, receivedBy.Validate())
	}
	if err := errors.Join(problems...); err != nil {
		return RecordHandoverCommand{}, err
	}

	return RecordHandoverCommand{
		actor:      actor,
		handoverID: handoverID,
		itemID:     itemID,
		from:       from,
		to:         to,
		receivedBy: receivedBy,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordHandoverCommand) Validate() error {
	return c.guard.Validate(ErrRecordHandoverCommandIsNotConstructed)
}

func (c RecordHandoverCommand) Actor() staff.Actor {
	return c.actor
}

func (c RecordHandoverCommand) HandoverID() kernel.UUID {
	return c.handoverID
}

func (c RecordHandoverCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c RecordHandoverCommand) From() *custody.Stage {
	return c.from
}

func (c RecordHandoverCommand) To() custody.Stage {
	return c.to
}

func (c RecordHandoverCommand) ReceivedBy() *kernel.UUID {
	return c.receivedBy
}
