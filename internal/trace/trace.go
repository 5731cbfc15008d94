// Package trace persists a completed reflection run as a TOML document for
// later inspection. The loop itself never touches the filesystem; callers
// decide whether a run gets traced.
package trace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"

	"autocritique/internal/loop"
	"autocritique/internal/verify"
)

// Trace is the on-disk record of one run.
type Trace struct {
	ID         string    `toml:"id"`
	Task       string    `toml:"task"`
	Model      string    `toml:"model,omitempty"`
	Provider   string    `toml:"provider,omitempty"`
	StartedAt  time.Time `toml:"started_at"`
	DurationMs int64     `toml:"duration_ms"`
	Stopped    bool      `toml:"stopped"`

	Rounds       []RoundRecord   `toml:"rounds,omitempty"`
	Messages     []MessageRecord `toml:"messages,omitempty"`
	Verification []OutcomeRecord `toml:"verification,omitempty"`
}

// RoundRecord mirrors loop.Round.
type RoundRecord struct {
	Step      int    `toml:"step"`
	Candidate string `toml:"candidate"`
	Critique  string `toml:"critique"`
}

// MessageRecord mirrors one transcript entry.
type MessageRecord struct {
	Role    string `toml:"role"`
	Content string `toml:"content"`
}

// OutcomeRecord mirrors verify.Outcome.
type OutcomeRecord struct {
	Fragment    int    `toml:"fragment"`
	SyntaxValid bool   `toml:"syntax_valid"`
	Tested      bool   `toml:"tested"`
	Result      string `toml:"result"`
	Detail      string `toml:"detail,omitempty"`
}

// FromResult builds a trace from a completed run. The ID is assigned here.
func FromResult(task, model, providerName string, startedAt time.Time, res *loop.Result, outcomes []verify.Outcome) *Trace {
	tr := &Trace{
		ID:         uuid.NewString(),
		Task:       task,
		Model:      model,
		Provider:   providerName,
		StartedAt:  startedAt.UTC(),
		DurationMs: time.Since(startedAt).Milliseconds(),
		Stopped:    res.Stopped,
	}
	for _, r := range res.Rounds {
		tr.Rounds = append(tr.Rounds, RoundRecord{Step: r.Step, Candidate: r.Candidate, Critique: r.Critique})
	}
	for _, m := range res.Transcript {
		tr.Messages = append(tr.Messages, MessageRecord{Role: string(m.Role), Content: m.Content})
	}
	for _, o := range outcomes {
		tr.Verification = append(tr.Verification, OutcomeRecord{
			Fragment:    o.Fragment,
			SyntaxValid: o.SyntaxValid,
			Tested:      o.Tested,
			Result:      string(o.Result),
			Detail:      o.Detail,
		})
	}
	return tr
}

// Write stores the trace under dir as <id>.toml, creating dir as needed.
// It returns the path written.
func Write(dir string, tr *Trace) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating trace directory %s: %w", dir, err)
	}

	data, err := toml.Marshal(tr)
	if err != nil {
		return "", fmt.Errorf("marshaling trace: %w", err)
	}

	path := filepath.Join(dir, tr.ID+".toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing trace: %w", err)
	}
	return path, nil
}

// Load reads a previously written trace file.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	var tr Trace
	if err := toml.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("parsing trace %s: %w", path, err)
	}
	return &tr, nil
}
