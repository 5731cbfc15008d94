package verify

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strings"
)

// TestResult classifies what the heuristic battery concluded about a
// fragment.
type TestResult string

const (
	ResultNotApplicable TestResult = "not_applicable"
	ResultPass          TestResult = "pass"
	ResultFail          TestResult = "fail"
	ResultError         TestResult = "error"
)

// Outcome is the per-fragment verification verdict.
type Outcome struct {
	Fragment    int // index of the fragment this outcome describes
	SyntaxValid bool
	Tested      bool
	Result      TestResult
	Detail      string
}

// Verify extracts fenced Go fragments from text and checks each one
// independently. It returns one outcome per fragment, ordered as the
// fragments occur, and an empty slice when no fragments are found.
// Per-fragment problems never abort the overall call.
func Verify(ctx context.Context, text string) []Outcome {
	fragments := ExtractFragments(text)
	outcomes := make([]Outcome, 0, len(fragments))
	for _, f := range fragments {
		outcomes = append(outcomes, verifyFragment(ctx, f))
	}
	return outcomes
}

// packageClauseRe detects an existing package clause so bare fragments can
// be wrapped for parsing and execution.
var packageClauseRe = regexp.MustCompile(`(?m)^[ \t]*package\s+\w+`)

// verifyFragment parses a single fragment and, when a recognizably named
// function is present, runs the matching test battery against it. Parsing
// never executes the fragment; only the battery does, after a clean parse.
func verifyFragment(ctx context.Context, f Fragment) Outcome {
	src := f.Source
	if !packageClauseRe.MatchString(src) {
		src = "package main\n\n" + src
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "fragment.go", src, 0)
	if err != nil {
		return Outcome{
			Fragment: f.Index,
			Result:   ResultError,
			Detail:   err.Error(),
		}
	}

	fn := firstFunction(file)
	if fn == nil {
		return Outcome{
			Fragment:    f.Index,
			SyntaxValid: true,
			Result:      ResultNotApplicable,
			Detail:      "no function to test",
		}
	}

	name := fn.Name.Name
	if !strings.Contains(strings.ToLower(name), "sort") {
		return Outcome{
			Fragment:    f.Index,
			SyntaxValid: true,
			Result:      ResultNotApplicable,
			Detail:      "no heuristic test available for this function name",
		}
	}

	out := runSortBattery(ctx, src, file.Name.Name, name)
	out.Fragment = f.Index
	return out
}

// firstFunction returns the first top-level function declaration, or nil.
// Selection is by position only; later definitions are ignored, and methods
// are skipped since the battery cannot construct a receiver.
func firstFunction(file *ast.File) *ast.FuncDecl {
	for _, decl := range file.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Recv == nil {
			return fd
		}
	}
	return nil
}
