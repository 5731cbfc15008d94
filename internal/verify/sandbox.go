package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/traefik/yaegi/interp"
)

// DefaultTimeout bounds a single fragment's execution when the caller's
// context carries no deadline.
const DefaultTimeout = 5 * time.Second

// sortVectors is the fixed test battery for sort-named functions:
// already-sorted, reverse-sorted, duplicates, empty.
var sortVectors = []struct {
	label string
	in    []int
	want  []int
}{
	{"already-sorted", []int{1, 2, 3, 4}, []int{1, 2, 3, 4}},
	{"reverse-sorted", []int{5, 4, 3, 2, 1}, []int{1, 2, 3, 4, 5}},
	{"duplicates", []int{3, 1, 2, 3, 1}, []int{1, 1, 2, 3, 3}},
	{"empty", []int{}, []int{}},
}

// runSortBattery executes src in a fresh interpreter and drives the named
// function through the sort vectors. Execution happens in a goroutine so a
// runaway fragment cannot block the caller past the timeout; the goroutine
// itself is abandoned on timeout rather than killed, which is the stated
// limit of this isolation.
func runSortBattery(ctx context.Context, src, pkgName, fnName string) Outcome {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	resultCh := make(chan Outcome, 1)
	go func() {
		resultCh <- execSortBattery(ctx, src, pkgName, fnName)
	}()

	select {
	case out := <-resultCh:
		return out
	case <-ctx.Done():
		return Outcome{
			SyntaxValid: true,
			Tested:      true,
			Result:      ResultError,
			Detail:      fmt.Sprintf("execution timed out: %v", ctx.Err()),
		}
	}
}

// execSortBattery evaluates the fragment in an interpreter with no stdlib
// symbols loaded — the candidate sees language built-ins and nothing else —
// then invokes the candidate function against each vector.
func execSortBattery(ctx context.Context, src, pkgName, fnName string) (out Outcome) {
	out = Outcome{SyntaxValid: true, Tested: true}
	defer func() {
		if r := recover(); r != nil {
			out.Result = ResultError
			out.Detail = fmt.Sprintf("panic during execution: %v", r)
		}
	}()

	i := interp.New(interp.Options{})

	if _, err := i.EvalWithContext(ctx, src); err != nil {
		out.Result = ResultError
		out.Detail = fmt.Sprintf("execution failed: %v", err)
		return out
	}

	v, err := i.EvalWithContext(ctx, pkgName+"."+fnName)
	if err != nil {
		out.Result = ResultError
		out.Detail = fmt.Sprintf("function %s not found after execution: %v", fnName, err)
		return out
	}

	fn, ok := v.Interface().(func([]int) []int)
	if !ok {
		out.Result = ResultError
		out.Detail = fmt.Sprintf("function %s has unsupported signature (want func([]int) []int)", fnName)
		return out
	}

	for _, vec := range sortVectors {
		// Copy the input so in-place implementations cannot corrupt the
		// shared vector table.
		in := append([]int(nil), vec.in...)
		got := fn(in)
		if !equalInts(got, vec.want) {
			out.Result = ResultFail
			out.Detail = fmt.Sprintf("%s input %v: got %v, want %v", vec.label, vec.in, got, vec.want)
			return out
		}
	}

	out.Result = ResultPass
	out.Detail = fmt.Sprintf("%s passed %d/%d vectors", fnName, len(sortVectors), len(sortVectors))
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
