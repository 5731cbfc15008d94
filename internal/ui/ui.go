package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ANSI color codes.
const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	blue    = "\033[34m"
	yellow  = "\033[33m"
	green   = "\033[32m"
	red     = "\033[31m"
	cyan    = "\033[36m"
	magenta = "\033[35m"
)

// UI receives progress notifications from a running reflection loop.
type UI interface {
	RoundStart(round, maxRounds int)
	RoleStart(role string)
	RoleDone(role string, elapsed time.Duration)
	Stopped(round int)
	ExhaustedRounds(maxRounds int)
	Info(msg string)
	Error(msg string)
}

// Printer writes human-readable progress to a terminal. All output goes to
// stderr so stdout stays clean for the final candidate.
type Printer struct {
	w io.Writer
}

func New() *Printer {
	return &Printer{w: os.Stderr}
}

// NewWriter returns a Printer that writes to w. Used in tests.
func NewWriter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Banner() {
	fmt.Fprintln(p.w, bold+cyan+"  ╔══════════════════════════════════════╗"+reset)
	fmt.Fprintln(p.w, bold+cyan+"  ║"+reset+bold+"  AUTOCRITIQUE  "+dim+"generate · critique"+reset+bold+cyan+"   ║"+reset)
	fmt.Fprintln(p.w, bold+cyan+"  ╚══════════════════════════════════════╝"+reset)
	fmt.Fprintln(p.w)
}

func (p *Printer) Prompt() {
	fmt.Fprintf(p.w, bold+cyan+"autocritique> "+reset)
}

func (p *Printer) RoundStart(round, maxRounds int) {
	fmt.Fprintf(p.w, "\n"+bold+magenta+"── round %d/%d ──"+reset+"\n", round, maxRounds)
}

func (p *Printer) RoleStart(role string) {
	fmt.Fprintf(p.w, roleColor(role)+bold+"▶ %s"+reset+dim+" working..."+reset+"\n", role)
}

func (p *Printer) RoleDone(role string, elapsed time.Duration) {
	fmt.Fprintf(p.w, roleColor(role)+"✓ %s"+reset+dim+" done (%.1fs)"+reset+"\n", role, elapsed.Seconds())
}

func (p *Printer) Stopped(round int) {
	fmt.Fprintf(p.w, green+bold+"✓ APPROVED"+reset+" — critic signaled OK in round %d\n", round)
}

func (p *Printer) ExhaustedRounds(maxRounds int) {
	fmt.Fprintf(p.w, yellow+bold+"⚠ round budget exhausted (%d)"+reset+" — returning last candidate\n", maxRounds)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, red+bold+"error: "+reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.w, dim+"%s"+reset+"\n", msg)
}

func (p *Printer) TaskStarted(task string) {
	fmt.Fprintf(p.w, cyan+"◆ task"+reset+" %s\n", firstLine(task, 100))
}

func (p *Printer) TaskComplete(rounds int, elapsed time.Duration) {
	fmt.Fprintf(p.w, green+"◆ task complete"+reset+dim+" (%d round(s), %.1fs)"+reset+"\n", rounds, elapsed.Seconds())
}

// Critique prints a round's critique text, indented and dimmed.
func (p *Printer) Critique(round int, text string) {
	fmt.Fprintf(p.w, dim+"critique %d:"+reset+"\n", round)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(p.w, dim+"  %s"+reset+"\n", line)
	}
}

// Verification prints one per-fragment verification line.
func (p *Printer) Verification(fragment int, result, detail string) {
	mark, color := "·", dim
	switch result {
	case "pass":
		mark, color = "✓", green
	case "fail":
		mark, color = "✗", red
	case "error":
		mark, color = "!", yellow
	}
	fmt.Fprintf(p.w, color+bold+"%s fragment %d"+reset+" %s"+dim+" — %s"+reset+"\n", mark, fragment, result, detail)
}

func (p *Printer) ShowHelp() {
	lines := []string{
		bold + "Commands:" + reset,
		"  Type a task description to start a generate-critique cycle",
		"  " + bold + "help" + reset + "    — show this message",
		"  " + bold + "status" + reset + "  — show current config",
		"  " + bold + "quit" + reset + "    — exit autocritique",
	}
	fmt.Fprintln(p.w, strings.Join(lines, "\n"))
}

func (p *Printer) ShowStatus(maxRounds int, model, providerName string) {
	fmt.Fprintln(p.w, dim+"config:"+reset)
	fmt.Fprintf(p.w, "  max rounds:  %d\n", maxRounds)
	fmt.Fprintf(p.w, "  provider:    %s\n", providerName)
	if model != "" {
		fmt.Fprintf(p.w, "  model:       %s\n", model)
	} else {
		fmt.Fprintf(p.w, "  model:       (default)\n")
	}
}

func roleColor(role string) string {
	if role == "critic" {
		return yellow
	}
	return blue
}

// firstLine extracts the first line of text and truncates to maxLen characters.
func firstLine(s string, maxLen int) string {
	line, _, _ := strings.Cut(s, "\n")
	line = strings.TrimSpace(line)
	if len(line) > maxLen {
		return line[:maxLen]
	}
	return line
}

// Noop discards all notifications. Useful for library callers and tests.
type Noop struct{}

func (Noop) RoundStart(int, int)            {}
func (Noop) RoleStart(string)               {}
func (Noop) RoleDone(string, time.Duration) {}
func (Noop) Stopped(int)                    {}
func (Noop) ExhaustedRounds(int)            {}
func (Noop) Info(string)                    {}
func (Noop) Error(string)                   {}
