package custody

import (
	"fmt"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// Stage is a station of the factory between which items change hands.
//
// Adjacency:
//
//	(none) ─> washing ─> drying ─> ironing ─> qc ─> packaging ─> outlet_return
//	qc ─> washing | drying | ironing      (rework)
//
// outlet_return is final.
type Stage int

const (
	StageUnknown Stage = iota
	StageWashing
	StageDrying
	StageIroning
	StageQC
	StagePackaging
	StageOutletReturn
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:      "unknown",
		StageWashing:      "washing",
		StageDrying:       "drying",
		StageIroning:      "ironing",
		StageQC:           "qc",
		StagePackaging:    "packaging",
		StageOutletReturn: "outlet_return",
	}
}

func stageTransitions() map[Stage][]Stage {
	return map[Stage][]Stage{
		StageWashing:      {StageDrying},
		StageDrying:       {StageIroning},
		StageIroning:      {StageQC},
		StageQC:           {StagePackaging, StageWashing, StageDrying, StageIroning},
		StagePackaging:    {StageOutletReturn},
	}
}

// ParseStage converts a persisted code into a Stage.
func ParseStage(s string) (Stage, error) {
	for stage, str := range getStageStrings() {
		if str == s && stage != StageUnknown {
			return stage, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a handover stage", s))
}

// ParseOptionalStage converts a nullable code. The empty string means no stage.
func ParseOptionalStage(s string) (*Stage, error) {
	if s == "" {
		return nil, nil
	}
	stage, err := ParseStage(s)
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects unknown values.
func (s Stage) Validate() error {
	if s <= StageUnknown || s > StageOutletReturn {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a handover stage", s))
	}
	return nil
}

// CanFollow checks that a handover into s may follow one that ended in from.
// A nil from means the item has no handover yet; only washing may start a chain.
func (s Stage) CanFollow(from *Stage) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if from == nil {
		if s == StageWashing {
			return nil
		}
		return errs.NewInvalidTransitionError(errs.SubjectHandover, "none", s.String())
	}

	for _, next := range stageTransitions()[*from] {
		if next == s {
			return nil
		}
	}
	return errs.NewInvalidTransitionError(errs.SubjectHandover, from.String(), s.String())
}

// ImpliedItemMove returns the item stage a handover into to puts the item in.
//
//   - washing: received -> awaiting_wash (returned_to_wash stays)
//   - drying: washing_complete -> awaiting_dry (returned_to_dry stays)
//   - ironing: drying_complete -> awaiting_iron (returned_to_iron stays)
//   - qc: ironing_complete -> awaiting_qc
//   - packaging: qc_passed -> awaiting_package
//   - outlet_return: in_transit_to_outlet -> received_at_outlet
//
// move is false when the item is already where the handover puts it. Any
// other current stage means the item is not ready for the handover.
func ImpliedItemMove(to Stage, current order.Stage) (target order.Stage, move bool, err error) {
	type rule struct {
		from   order.Stage
		to     order.Stage
		rework order.Stage
	}
	rules := map[Stage]rule{
		StageWashing:      {order.StageReceived, order.StageAwaitingWash, order.StageReturnedToWash},
		StageDrying:       {order.StageWashingComplete, order.StageAwaitingDry, order.StageReturnedToDry},
		StageIroning:      {order.StageDryingComplete, order.StageAwaitingIron, order.StageReturnedToIron},
		StageQC:           {order.StageIroningComplete, order.StageAwaitingQC, order.StageUnknown},
		StagePackaging:    {order.StageQCPassed, order.StageAwaitingPackage, order.StageUnknown},
		StageOutletReturn: {order.StageInTransitToOutlet, order.StageReceivedAtOutlet, order.StageUnknown},
	}

	r, ok := rules[to]
	if !ok {
		return order.StageUnknown, false, to.Validate()
	}

	switch current {
	case r.from:
		return r.to, true, nil
	case r.rework:
		if r.rework != order.StageUnknown {
			return current, false, nil
		}
	}

	return order.StageUnknown, false, errs.NewInvalidStageTransitionError(current.String(), r.to.String())
}
