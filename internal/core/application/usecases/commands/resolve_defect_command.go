package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrResolveDefectCommandIsNotConstructed = errors.New(
	"ResolveDefectCommand must be created via NewResolveDefectCommand constructor",
)

// ResolveDefectCommand closes a defect report with resolution notes.
type ResolveDefectCommand struct { //nolint:recvcheck //using for validation
	actor    staff.Actor
	defectID kernel.UUID
	notes    string

	guard guard.ConstructorGuard
}

func NewResolveDefectCommand(actor staff.Actor, defectID kernel.UUID, notes string) (ResolveDefectCommand, error) {
	notes = strings.TrimSpace(notes)

	var notesErr error
	if notes == "" {
		notesErr = errs.NewValueIsRequiredError("resolution_notes")
	}

	if err := errors.Join(actor.Validate(), defectID.Validate(), notesErr); err != nil {
		return ResolveDefectCommand{}, err
	}

	return ResolveDefectCommand{
		actor:    actor,
		defectID: defectID,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveDefectCommand) Validate() error {
	return c.guard.Validate(ErrResolveDefectCommandIsNotConstructed)
}

func (c ResolveDefectCommand) Actor() staff.Actor {
	return c.actor
}

func (c ResolveDefectCommand) DefectID() kernel.UUID {
	return c.defectID
}

func (c ResolveDefectCommand) Notes() string {
	return c.notes
}
