package verify

import (
	"context"
	"strings"
	"testing"
)

const goodBubbleSort = "```go\n" + `func bubbleSort(arr []int) []int {
	out := make([]int, len(arr))
	copy(out, arr)
	for i := 0; i < len(out); i++ {
		for j := 0; j < len(out)-i-1; j++ {
			if out[j] > out[j+1] {
				out[j], out[j+1] = out[j+1], out[j]
			}
		}
	}
	return out
}
` + "```\n"

// buggyDedupSort sorts correctly but silently drops duplicate values, so
// only the duplicates vector exposes it.
const buggyDedupSort = "```go\n" + `func brokenSort(arr []int) []int {
	var out []int
	for _, v := range arr {
		pos := 0
		for pos < len(out) && out[pos] < v {
			pos++
		}
		if pos < len(out) && out[pos] == v {
			continue
		}
		tail := append([]int{v}, out[pos:]...)
		out = append(out[:pos], tail...)
	}
	return out
}
` + "```\n"

func TestVerify_NoFragments(t *testing.T) {
	outcomes := Verify(context.Background(), "nothing fenced here")
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes, want 0", len(outcomes))
	}
}

func TestVerify_CorrectSortPasses(t *testing.T) {
	outcomes := Verify(context.Background(), goodBubbleSort)
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}

	o := outcomes[0]
	if !o.SyntaxValid {
		t.Errorf("SyntaxValid = false, want true: %s", o.Detail)
	}
	if !o.Tested {
		t.Error("Tested = false, want true")
	}
	if o.Result != ResultPass {
		t.Errorf("Result = %s, want pass: %s", o.Result, o.Detail)
	}
}

func TestVerify_BuggySortFailsOnDuplicates(t *testing.T) {
	outcomes := Verify(context.Background(), buggyDedupSort)
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}

	o := outcomes[0]
	if !o.SyntaxValid {
		t.Fatalf("SyntaxValid = false, want true: %s", o.Detail)
	}
	if o.Result != ResultFail {
		t.Fatalf("Result = %s, want fail: %s", o.Result, o.Detail)
	}
	if !strings.Contains(o.Detail, "duplicates") {
		t.Errorf("Detail should cite the duplicates vector, got %q", o.Detail)
	}
	if !strings.Contains(o.Detail, "got") || !strings.Contains(o.Detail, "want") {
		t.Errorf("Detail should show actual and expected, got %q", o.Detail)
	}
}

func TestVerify_InvalidSyntax(t *testing.T) {
	text := "```go\nfunc broken( {\n```"
	outcomes := Verify(context.Background(), text)
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}

	o := outcomes[0]
	if o.SyntaxValid {
		t.Error("SyntaxValid = true, want false")
	}
	if o.Tested {
		t.Error("Tested = true, want false")
	}
	if o.Result != ResultError {
		t.Errorf("Result = %s, want error", o.Result)
	}
	if o.Detail == "" {
		t.Error("Detail should carry the parser message")
	}
}

func TestVerify_InvalidFragmentDoesNotAffectOthers(t *testing.T) {
	text := "```go\nfunc broken( {\n```\nand separately:\n" + goodBubbleSort
	outcomes := Verify(context.Background(), text)
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}

	if outcomes[0].SyntaxValid {
		t.Error("fragment 0: SyntaxValid = true, want false")
	}
	if outcomes[1].Result != ResultPass {
		t.Errorf("fragment 1: Result = %s, want pass: %s", outcomes[1].Result, outcomes[1].Detail)
	}
	if outcomes[0].Fragment != 0 || outcomes[1].Fragment != 1 {
		t.Errorf("fragment indices = %d, %d; want 0, 1", outcomes[0].Fragment, outcomes[1].Fragment)
	}
}

func TestVerify_NoFunction(t *testing.T) {
	text := "```go\nvar answer = 42\n```"
	outcomes := Verify(context.Background(), text)
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}

	o := outcomes[0]
	if !o.SyntaxValid {
		t.Errorf("SyntaxValid = false, want true: %s", o.Detail)
	}
	if o.Tested {
		t.Error("Tested = true, want false")
	}
	if o.Result != ResultNotApplicable {
		t.Errorf("Result = %s, want not_applicable", o.Result)
	}
	if o.Detail != "no function to test" {
		t.Errorf("Detail = %q", o.Detail)
	}
}

func TestVerify_UnrecognizedFunctionName(t *testing.T) {
	text := "```go\nfunc reverse(arr []int) []int { return arr }\n```"
	outcomes := Verify(context.Background(), text)
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}

	o := outcomes[0]
	if !o.SyntaxValid || o.Tested {
		t.Errorf("got SyntaxValid=%v Tested=%v, want valid and untested", o.SyntaxValid, o.Tested)
	}
	if o.Result != ResultNotApplicable {
		t.Errorf("Result = %s, want not_applicable", o.Result)
	}
	if o.Detail != "no heuristic test available for this function name" {
		t.Errorf("Detail = %q", o.Detail)
	}
}

func TestVerify_FirstFunctionWins(t *testing.T) {
	// The first definition is not sort-named, so the fragment is skipped
	// even though a sort function appears later.
	text := "```go\n" + `func helper(n int) int { return n }

func quickSort(arr []int) []int { return arr }
` + "```"
	outcomes := Verify(context.Background(), text)
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}
	if outcomes[0].Result != ResultNotApplicable {
		t.Errorf("Result = %s, want not_applicable (first function wins)", outcomes[0].Result)
	}
}

func TestVerify_PanickingSortReportsError(t *testing.T) {
	text := "```go\n" + `func panicSort(arr []int) []int {
	return []int{arr[100]}
}
` + "```"
	outcomes := Verify(context.Background(), text)
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}

	o := outcomes[0]
	if !o.SyntaxValid {
		t.Errorf("SyntaxValid = false, want true: %s", o.Detail)
	}
	if o.Result != ResultError {
		t.Errorf("Result = %s, want error: %s", o.Result, o.Detail)
	}
}

func TestVerify_UnsupportedSignature(t *testing.T) {
	text := "```go\nfunc sortInPlace(arr []int) { }\n```"
	outcomes := Verify(context.Background(), text)
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}

	o := outcomes[0]
	if o.Result != ResultError {
		t.Errorf("Result = %s, want error: %s", o.Result, o.Detail)
	}
	if !strings.Contains(o.Detail, "signature") {
		t.Errorf("Detail should mention the signature, got %q", o.Detail)
	}
}

func TestVerify_ExplicitPackageClause(t *testing.T) {
	text := "```go\n" + `package sorter

func selectionSort(arr []int) []int {
	out := make([]int, len(arr))
	copy(out, arr)
	for i := 0; i < len(out); i++ {
		min := i
		for j := i + 1; j < len(out); j++ {
			if out[j] < out[min] {
				min = j
			}
		}
		out[i], out[min] = out[min], out[i]
	}
	return out
}
` + "```"
	outcomes := Verify(context.Background(), text)
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}
	if outcomes[0].Result != ResultPass {
		t.Errorf("Result = %s, want pass: %s", outcomes[0].Result, outcomes[0].Detail)
	}
}
