package replay

import "fmt"

// ReplayError reports why a TurnSpec could not be replayed. StepIndex is the
// index into TurnSpec.Turns, or -1 for problems in the spec's header.
type ReplayError struct {
	StepIndex int32  `json:"step_index"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
	EmpireID  string `json:"empire_id,omitempty"`
}

func (e *ReplayError) Error() string {
	if e == nil {
		return ""
	}
	if e.EmpireID != "" {
		return fmt.Sprintf("replay error(step=%d reason=%s empire=%s): %s", e.StepIndex, e.Reason, e.EmpireID, e.Message)
	}
	return fmt.Sprintf("replay error(step=%d reason=%s): %s", e.StepIndex, e.Reason, e.Message)
}

func headerError(reason, format string, args ...any) *ReplayError {
	return &ReplayError{StepIndex: -1, Reason: reason, Message: fmt.Sprintf(format, args...)}
}
