package order

import (
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"
)

// stageRoles lists, per target stage, the roles allowed to move an item there.
// Admin roles may move items anywhere and are not listed.
func stageRoles() map[Stage][]staff.Role {
	washTeam := []staff.Role{staff.Washer}
	dryTeam := []staff.Role{staff.Dryer}
	ironTeam := []staff.Role{staff.Ironer}
	qcTeam := []staff.Role{staff.QCPackager}

	return map[Stage][]staff.Role{
		StageAwaitingWash:           washTeam,
		StageInWashing:              washTeam,
		StageWashingComplete:        washTeam,
		StageAwaitingDry:            dryTeam,
		StageInDrying:               dryTeam,
		StageDryingComplete:         dryTeam,
		StageAwaitingIron:           ironTeam,
		StageInIroning:              ironTeam,
		StageIroningComplete:        ironTeam,
		StageAwaitingQC:             qcTeam,
		StageInQC:                   qcTeam,
		StageQCPassed:               qcTeam,
		StageQCFailed:               qcTeam,
		StageReturnedToWash:         qcTeam,
		StageReturnedToDry:          qcTeam,
		StageReturnedToIron:         qcTeam,
		StageAwaitingPackage:        qcTeam,
		StagePackaged:               qcTeam,
		StageAwaitingDispatchReturn: qcTeam,
		StageInTransitToOutlet:      {staff.Dispatcher},
		StageReceivedAtOutlet:       {staff.Dispatcher, staff.Attendant},
		StageReadyForPickup:         {staff.Attendant},
		StagePickedUp:               {staff.Attendant},
		StageDamaged: {
			staff.Washer, staff.Dryer, staff.Ironer, staff.QCPackager, staff.Dispatcher, staff.Attendant,
		},
	}
}

// RoleMayMoveItemTo reports whether role may move an item into stage.
func RoleMayMoveItemTo(role staff.Role, stage Stage) bool {
	if role.IsAdmin() {
		return true
	}
	for _, allowed := range stageRoles()[stage] {
		if allowed == role {
			return true
		}
	}
	return false
}

func ensureRoleMayMoveItemTo(role staff.Role, stage Stage) error {
	if !RoleMayMoveItemTo(role, stage) {
		return errs.NewPermissionDeniedError(role.String(), "move an item to "+stage.String())
	}
	return nil
}
