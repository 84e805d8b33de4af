package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/custody"
	"laundry/internal/core/domain/model/defect"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrReportDefectCommandIsNotConstructed = errors.New(
	"ReportDefectCommand must be created via NewReportDefectCommand constructor",
)

// ReportDefectCommand records a problem found on an item.
type ReportDefectCommand struct { //nolint:recvcheck //using for validation
	actor       staff.Actor
	defectID    kernel.UUID
	itemID      kernel.UUID
	defectType  defect.Type
	stageFound  custody.Stage
	description string

	guard guard.ConstructorGuard
}

func NewReportDefectCommand(
	actor staff.Actor,
	defectID, itemID kernel.UUID,
	defectType defect.Type,
	stageFound custody.Stage,
	description string,
) (ReportDefectCommand, error) {
	description = strings.TrimSpace(description)

	var descriptionErr error
	if description == "" {
		descriptionErr = errs.NewValueIsRequiredError("description")
	}

	if err := errors.Join(
		actor.Validate(),
		defectID.Validate(),
		itemID.Validate(),
		defectType.Validate(),
		stageFound.Validate(),
		descriptionErr,
	); err != nil {
		return ReportDefectCommand{}, err
	}

	return ReportDefectCommand{
		actor:       actor,
		defectID:    defectID,
		itemID:      itemID,
		defectType:  defectType,
		stageFound:  stageFound,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReportDefectCommand) Validate() error {
	return c.guard.Validate(ErrReportDefectCommandIsNotConstructed)
}

func (c ReportDefectCommand) Actor() staff.Actor {
	return c.actor
}

func (c ReportDefectCommand) DefectID() kernel.UUID {
	return c.defectID
}

func (c ReportDefectCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c ReportDefectCommand) Type() defect.Type {
	return c.defectType
}

func (c ReportDefectCommand) StageFound() custody.Stage {
	return c.stageFound
}

func (c ReportDefectCommand) Description() string {
	return c.description
}
