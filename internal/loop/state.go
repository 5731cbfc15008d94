package loop

import "autocritique/internal/agent"

// Phase represents a stage in the generate-critique loop lifecycle.
type Phase int

const (
	PhaseIdle       Phase = iota // No work started.
	PhaseGenerating              // Generator call in flight.
	PhaseGenerated               // Candidate produced, awaiting critique.
	PhaseCritiquing              // Critic call in flight.
	PhaseCritiqued               // Critique recorded for the round.
	PhaseStopped                 // Critic signaled OK.
	PhaseExhausted               // Round budget used up without a stop.
	PhaseError                   // A provider call failed.
)

// String returns the snake_case name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGenerating:
		return "generating"
	case PhaseGenerated:
		return "generated"
	case PhaseCritiquing:
		return "critiquing"
	case PhaseCritiqued:
		return "critiqued"
	case PhaseStopped:
		return "stopped"
	case PhaseExhausted:
		return "exhausted"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Round records one completed generate+critique cycle.
type Round struct {
	Step      int // 1-based
	Candidate string
	Critique  string
}

// Result is the outcome of a completed run.
type Result struct {
	FinalCandidate string
	Rounds         []Round
	Transcript     agent.Transcript
	Stopped        bool // true when the stop predicate fired before the budget ran out
}
