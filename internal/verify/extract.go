// Package verify inspects generated text for fenced Go code fragments and
// runs a best-effort correctness check over them: strict syntax validation,
// then a small heuristic test battery chosen by function name, executed in
// an isolated interpreter. It is an advisory signal, not a security
// boundary.
package verify

import (
	"regexp"
	"strings"
)

// Fragment is a region of generated text recognized as Go source by its
// fence markers.
type Fragment struct {
	Index  int // position among extracted fragments, 0-based
	Source string
}

// fenceRe matches fenced blocks whose opening fence declares the go
// language tag. Blocks without a language tag (or with another language)
// are not candidate fragments.
var fenceRe = regexp.MustCompile("(?is)```go[ \t]*\r?\n(.*?)```")

// ExtractFragments returns the fenced Go fragments in text, ordered by
// position of occurrence.
func ExtractFragments(text string) []Fragment {
	matches := fenceRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	fragments := make([]Fragment, 0, len(matches))
	for i, m := range matches {
		fragments = append(fragments, Fragment{Index: i, Source: strings.TrimSpace(m[1])})
	}
	return fragments
}
