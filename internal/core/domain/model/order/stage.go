package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Stage is where a single laundry item is in the factory workflow.
//
// Linear path:
//
//	received ─> awaiting_wash ─> in_washing ─> washing_complete ─>
//	awaiting_dry ─> in_drying ─> drying_complete ─> awaiting_iron ─>
//	in_ironing ─> ironing_complete ─> awaiting_qc ─> in_qc
//
// Quality control branches:
//
//	in_qc ─> qc_passed ─> awaiting_package ─> packaged ─>
//	awaiting_dispatch_return ─> in_transit_to_outlet ─> received_at_outlet ─>
//	ready_for_pickup ─> picked_up
//
//	in_qc ─> qc_failed ─> returned_to_wash | returned_to_dry | returned_to_iron
//	returned_to_wash ─> in_washing, returned_to_dry ─> in_drying,
//	returned_to_iron ─> in_ironing
//
// damaged is reachable from every non-terminal stage. picked_up and damaged
// are terminal.
type Stage int

const (
	// StageUnknown catches uninitialized values.
	StageUnknown Stage = iota
	StageReceived
	StageAwaitingWash
	StageInWashing
	StageWashingComplete
	StageAwaitingDry
	StageInDrying
	StageDryingComplete
	StageAwaitingIron
	StageInIroning
	StageIroningComplete
	StageAwaitingQC
	StageInQC
	StageQCPassed
	StageQCFailed
	StageAwaitingPackage
	StagePackaged
	StageAwaitingDispatchReturn
	StageInTransitToOutlet
	StageReceivedAtOutlet
	StageReadyForPickup
	StagePickedUp
	StageReturnedToWash
	StageReturnedToDry
	StageReturnedToIron
	StageDamaged
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:                "unknown",
		StageReceived:               "received",
		StageAwaitingWash:           "awaiting_wash",
		StageInWashing:              "in_washing",
		StageWashingComplete:        "washing_complete",
		StageAwaitingDry:            "awaiting_dry",
		StageInDrying:               "in_drying",
		StageDryingComplete:         "drying_complete",
		StageAwaitingIron:           "awaiting_iron",
		StageInIroning:              "in_ironing",
		StageIroningComplete:        "ironing_complete",
		StageAwaitingQC:             "awaiting_qc",
		StageInQC:                   "in_qc",
		StageQCPassed:               "qc_passed",
		StageQCFailed:               "qc_failed",
		StageAwaitingPackage:        "awaiting_package",
		StagePackaged:               "packaged",
		StageAwaitingDispatchReturn: "awaiting_dispatch_return",
		StageInTransitToOutlet:      "in_transit_to_outlet",
		StageReceivedAtOutlet:       "received_at_outlet",
		StageReadyForPickup:         "ready_for_pickup",
		StagePickedUp:               "picked_up",
		StageReturnedToWash:         "returned_to_wash",
		StageReturnedToDry:          "returned_to_dry",
		StageReturnedToIron:         "returned_to_iron",
		StageDamaged:                "damaged",
	}
}

// stageTransitions is the adjacency table. damaged is added by CanMoveTo.
func stageTransitions() map[Stage][]Stage {
	return map[Stage][]Stage{
		StageReceived:               {StageAwaitingWash},
		StageAwaitingWash:           {StageInWashing},
		StageInWashing:              {StageWashingComplete},
		StageWashingComplete:        {StageAwaitingDry},
		StageAwaitingDry:            {StageInDrying},
		StageInDrying:               {StageDryingComplete},
		StageDryingComplete:         {StageAwaitingIron},
		StageAwaitingIron:           {StageInIroning},
		StageInIroning:              {StageIroningComplete},
		StageIroningComplete:        {StageAwaitingQC},
		StageAwaitingQC:             {StageInQC},
		StageInQC:                   {StageQCPassed, StageQCFailed},
		StageQCPassed:               {StageAwaitingPackage},
		StageQCFailed:               {StageReturnedToWash, StageReturnedToDry, StageReturnedToIron},
		StageAwaitingPackage:        {StagePackaged},
		StagePackaged:               {StageAwaitingDispatchReturn},
		StageAwaitingDispatchReturn: {StageInTransitToOutlet},
		StageInTransitToOutlet:      {StageReceivedAtOutlet},
		StageReceivedAtOutlet:       {StageReadyForPickup},
		StageReadyForPickup:         {StagePickedUp},
		StageReturnedToWash:         {StageInWashing},
		StageReturnedToDry:          {StageInDrying},
		StageReturnedToIron:         {StageInIroning},
	}
}

// ParseStage converts a persisted code into a Stage.
func ParseStage(s string) (Stage, error) {
	for stage, str := range getStageStrings() {
		if str == s && stage != StageUnknown {
			return stage, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid item stage", s))
}

// String returns the persisted code.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects StageUnknown and out of range values.
func (s Stage) Validate() error {
	if s <= StageUnknown || s > StageDamaged {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid item stage", s))
	}
	return nil
}

// IsTerminal reports whether the item has left the workflow.
func (s Stage) IsTerminal() bool {
	return s == StagePickedUp || s == StageDamaged
}

// CanMoveTo checks a move against the adjacency table and returns an
// InvalidStageTransition error when it is not allowed.
func (s Stage) CanMoveTo(target Stage) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if !s.IsTerminal() && s.Validate() == nil {
		if target == StageDamaged {
			return nil
		}
		for _, next := range stageTransitions()[s] {
			if next == target {
				return nil
			}
		}
	}

	return errs.NewInvalidStageTransitionError(s.String(), target.String())
}
