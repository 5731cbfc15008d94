// Package provider abstracts the text-completion backend consumed by the
// reflection loop. The loop is agnostic to how a caller constructed its
// provider; selection by credentials lives in FromEnv, not in the loop.
package provider

import (
	"context"
	"errors"
	"os"

	"autocritique/internal/agent"
)

// Provider turns an ordered message sequence into a single response text.
// Implementations must fail with a distinguishable error on transport
// failure, authentication failure, or an empty/malformed response — never
// silently return "".
type Provider interface {
	Complete(ctx context.Context, messages []agent.Message, model string) (string, error)
	// Name identifies the backend for status output.
	Name() string
}

var (
	// ErrEmptyResponse is returned when the backend answered without
	// usable content.
	ErrEmptyResponse = errors.New("provider returned empty response")
	// ErrNoChoices is returned when the backend response carried no
	// completion choices.
	ErrNoChoices = errors.New("provider returned no choices")
)

// GroqBaseURL is the OpenAI-compatible endpoint for Groq.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// FromEnv picks a provider from the environment: Groq when GROQ_API_KEY is
// set, OpenAI when OPENAI_API_KEY is set, otherwise the deterministic
// offline mock. baseURL, when non-empty, overrides the endpoint either way.
func FromEnv(baseURL string, verbose bool) Provider {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		url := baseURL
		if url == "" {
			url = GroqBaseURL
		}
		return NewOpenAI(key, url, "groq", verbose)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return NewOpenAI(key, baseURL, "openai", verbose)
	}
	return &Mock{}
}
