package agent

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSeed(t *testing.T) {
	tr := Seed("be helpful", "sort this list")

	want := Transcript{
		{Role: RoleSystem, Content: "be helpful"},
		{Role: RoleUser, Content: "sort this list"},
	}
	if diff := cmp.Diff(want, tr); diff != "" {
		t.Errorf("Seed mismatch (-want +got):\n%s", diff)
	}
}

func TestAppend_DoesNotMutateReceiver(t *testing.T) {
	base := Seed("sys", "task")
	withCandidate := base.Append(RoleAssistant, "candidate v1")
	withCritique := withCandidate.Append(RoleUser, "needs work")

	if len(base) != 2 {
		t.Errorf("base transcript grew to %d messages", len(base))
	}
	if len(withCandidate) != 3 {
		t.Errorf("first append: got %d messages, want 3", len(withCandidate))
	}
	if len(withCritique) != 4 {
		t.Errorf("second append: got %d messages, want 4", len(withCritique))
	}

	// Appending to an earlier snapshot must not clobber later ones.
	diverged := withCandidate.Append(RoleUser, "different critique")
	if withCritique[3].Content != "needs work" {
		t.Errorf("later snapshot clobbered: got %q", withCritique[3].Content)
	}
	if diverged[3].Content != "different critique" {
		t.Errorf("diverged snapshot: got %q", diverged[3].Content)
	}
}

func TestLast(t *testing.T) {
	tr := Seed("sys", "task").
		Append(RoleAssistant, "v1").
		Append(RoleUser, "critique 1").
		Append(RoleAssistant, "v2")

	tests := []struct {
		role Role
		want string
	}{
		{RoleAssistant, "v2"},
		{RoleUser, "critique 1"},
		{RoleSystem, "sys"},
	}
	for _, tt := range tests {
		if got := tr.Last(tt.role); got != tt.want {
			t.Errorf("Last(%s) = %q, want %q", tt.role, got, tt.want)
		}
	}

	if got := (Transcript{}).Last(RoleUser); got != "" {
		t.Errorf("Last on empty transcript = %q, want empty", got)
	}
}
