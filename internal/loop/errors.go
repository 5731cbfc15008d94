package loop

import (
	"errors"
	"fmt"
)

var (
	ErrNoTask     = errors.New("no task provided")
	ErrNoProvider = errors.New("no provider configured")
	ErrMaxRounds  = errors.New("max rounds must be positive")
)

// StepError reports a provider failure, tagged with the round and phase at
// which it occurred. Partial carries the fully completed rounds and the
// transcript as it stood when the call failed; no partial round is recorded
// for the failing step.
type StepError struct {
	Step    int
	Phase   Phase // PhaseGenerating or PhaseCritiquing
	Err     error
	Partial *Result
}

func (e *StepError) Error() string {
	return fmt.Sprintf("round %d (%s): %v", e.Step, e.Phase, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
