package loop

import "strings"

// ShouldStop reports whether a critique signals approval. Matching is
// case-insensitive: the token <OK> anywhere in the text fires, as does any
// line that, after trimming surrounding whitespace, equals exactly OK.
// "OKAY" and "not OK yet" do not fire.
func ShouldStop(critique string) bool {
	if critique == "" {
		return false
	}
	if strings.Contains(strings.ToLower(critique), "<ok>") {
		return true
	}
	for _, line := range strings.Split(critique, "\n") {
		if strings.EqualFold(strings.TrimSpace(line), "ok") {
			return true
		}
	}
	return false
}
