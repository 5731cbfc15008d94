package provider

import (
	"context"
	"strings"

	"autocritique/internal/agent"
)

// mockMergeSort is the canned generation answer: a toy merge sort in a
// fenced Go block, so the verifier has something real to chew on.
const mockMergeSort = "```go\n" + `func mergeSort(arr []int) []int {
	if len(arr) <= 1 {
		return arr
	}
	mid := len(arr) / 2
	left := mergeSort(arr[:mid])
	right := mergeSort(arr[mid:])
	merged := make([]int, 0, len(arr))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			merged = append(merged, left[i])
			i++
		} else {
			merged = append(merged, right[j])
			j++
		}
	}
	merged = append(merged, left[i:]...)
	merged = append(merged, right[j:]...)
	return merged
}
` + "```\n"

// Mock is a deterministic offline stand-in used when no API key is present
// and in tests. It inspects the system prompt to decide which role it is
// playing and echoes fixed, reproducible text.
type Mock struct{}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Complete(_ context.Context, messages []agent.Message, _ string) (string, error) {
	var system, user strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case agent.RoleSystem:
			system.WriteString(msg.Content)
			system.WriteString(" ")
		case agent.RoleUser:
			user.WriteString(msg.Content)
			user.WriteString(" ")
		}
	}
	sysText := strings.ToLower(system.String())
	userText := strings.ToLower(user.String())

	// Generation role: return the toy merge sort.
	if strings.Contains(sysText, "programmer") || strings.Contains(sysText, "generate") {
		return mockMergeSort, nil
	}
	// Critique role: approve code, nudge anything else.
	if strings.Contains(sysText, "review") || strings.Contains(sysText, "expert") {
		if strings.Contains(userText, "```go") || strings.Contains(userText, "<ok>") {
			return "<OK>", nil
		}
		return "Looks fine. Consider adding doc comments and tests. <OK>", nil
	}
	return "<OK>", nil
}
