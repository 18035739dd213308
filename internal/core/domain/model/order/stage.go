package order

import (
	"fmt"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// Stage is advisory progress reported by the carrier while an order is
// accepted. It lives beside Status and never changes it.
type Stage int

const (
	StageNone Stage = iota
	StageLoading
	StageOnRoute
	StageAwaitingUnload
	StageUnloaded
)

var stageNames = map[Stage]string{
	StageLoading:        "loading",
	StageOnRoute:        "on_route",
	StageAwaitingUnload: "awaiting_unload",
	StageUnloaded:       "unloaded",
}

// Stages lists the settable stages in the order they are usually reported.
func Stages() []Stage {
	return []Stage{StageLoading, StageOnRoute, StageAwaitingUnload, StageUnloaded}
}

// ParseStage maps a persisted or callback name to a Stage. The empty string is StageNone.
func ParseStage(s string) (Stage, error) {
	if s == "" {
		return StageNone, nil
	}
	for st, name := range stageNames {
		if name == s {
			return st, nil
		}
	}
	return StageNone, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid stage", s))
}

func (s Stage) String() string {
	return stageNames[s]
}

// IsSet reports whether the carrier has reported any stage.
func (s Stage) IsSet() bool {
	return s != StageNone
}

func (s Stage) validateSettable() error {
	if _, ok := stageNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a settable stage", s))
	}
	return nil
}
