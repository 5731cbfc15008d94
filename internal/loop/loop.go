// Package loop implements the generate → critique → regenerate reflection
// cycle. The loop owns a growing conversation transcript, applies the stop
// policy to each critique, and returns the final candidate together with
// the full per-round trace. It performs no I/O of its own; the injected
// provider and UI are the only collaborators with external effects.
package loop

import (
	"context"
	"strings"
	"time"

	"autocritique/internal/agent"
	"autocritique/internal/provider"
	"autocritique/internal/ui"
)

// Loop drives the generator-critic cycle for a single task.
type Loop struct {
	Provider         provider.Provider
	UI               ui.UI // Optional; nil disables progress output.
	Model            string
	GenerationPrompt string
	CritiquePrompt   string
	MaxRounds        int
	Delay            time.Duration // Optional pause between rounds.
}

// Run executes the reflection loop for the given task.
//
// The transcript seeds with [system(generation prompt), user(task)]. Each
// round appends exactly [assistant(candidate), user(critique)]. The critique
// is produced against a fresh two-message context, never the growing
// transcript. The loop terminates when the critique satisfies ShouldStop or
// after MaxRounds rounds, whichever comes first.
//
// On a provider failure the run aborts with a *StepError carrying the round
// number, the phase (generating vs critiquing), and the completed rounds up
// to that point.
func (l *Loop) Run(ctx context.Context, task string) (*Result, error) {
	if strings.TrimSpace(task) == "" {
		return nil, ErrNoTask
	}
	if l.Provider == nil {
		return nil, ErrNoProvider
	}
	if l.MaxRounds < 1 {
		return nil, ErrMaxRounds
	}
	out := l.UI
	if out == nil {
		out = ui.Noop{}
	}

	transcript := agent.Seed(l.GenerationPrompt, task)
	var rounds []Round
	var candidate string

	for step := 1; step <= l.MaxRounds; step++ {
		out.RoundStart(step, l.MaxRounds)

		out.RoleStart("generator")
		started := time.Now()
		candidateText, err := l.Provider.Complete(ctx, transcript, l.Model)
		if err != nil {
			return nil, &StepError{
				Step:    step,
				Phase:   PhaseGenerating,
				Err:     err,
				Partial: partial(rounds, transcript),
			}
		}
		out.RoleDone("generator", time.Since(started))
		transcript = transcript.Append(agent.RoleAssistant, candidateText)
		candidate = candidateText

		out.RoleStart("critic")
		started = time.Now()
		critiqueContext := agent.Seed(l.CritiquePrompt, candidateText)
		critique, err := l.Provider.Complete(ctx, critiqueContext, l.Model)
		if err != nil {
			return nil, &StepError{
				Step:    step,
				Phase:   PhaseCritiquing,
				Err:     err,
				Partial: partial(rounds, transcript),
			}
		}
		out.RoleDone("critic", time.Since(started))
		transcript = transcript.Append(agent.RoleUser, critique)

		rounds = append(rounds, Round{Step: step, Candidate: candidateText, Critique: critique})

		if ShouldStop(critique) {
			out.Stopped(step)
			return &Result{
				FinalCandidate: candidate,
				Rounds:         rounds,
				Transcript:     transcript,
				Stopped:        true,
			}, nil
		}

		if l.Delay > 0 && step < l.MaxRounds {
			if err := sleep(ctx, l.Delay); err != nil {
				return nil, &StepError{
					Step:    step,
					Phase:   PhaseCritiqued,
					Err:     err,
					Partial: partial(rounds, transcript),
				}
			}
		}
	}

	out.ExhaustedRounds(l.MaxRounds)
	return &Result{
		FinalCandidate: candidate,
		Rounds:         rounds,
		Transcript:     transcript,
	}, nil
}

// partial snapshots the completed rounds and transcript for error reporting.
func partial(rounds []Round, transcript agent.Transcript) *Result {
	final := ""
	if len(rounds) > 0 {
		final = rounds[len(rounds)-1].Candidate
	}
	return &Result{
		FinalCandidate: final,
		Rounds:         rounds,
		Transcript:     transcript,
	}
}

// sleep waits for d or until the context is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
