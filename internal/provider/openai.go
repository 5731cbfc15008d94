package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"autocritique/internal/agent"
)

// OpenAI talks to any OpenAI-compatible chat-completion endpoint. A custom
// base URL lets the same client serve Groq and local gateways.
type OpenAI struct {
	client  *openai.Client
	name    string
	Verbose bool
}

// NewOpenAI builds a client for the given key. baseURL may be empty for the
// default OpenAI endpoint; name labels the backend in status output.
func NewOpenAI(apiKey, baseURL, name string, verbose bool) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if name == "" {
		name = "openai"
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), name: name, Verbose: verbose}
}

func (o *OpenAI) Name() string { return o.name }

// Complete sends the messages as a chat-completion request and returns the
// first choice's content. Empty content is reported as an error rather than
// passed through.
func (o *OpenAI) Complete(ctx context.Context, messages []agent.Message, model string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: toChatMessages(messages),
	}

	if o.Verbose {
		fmt.Fprintf(os.Stderr, "[%s] completing %d message(s) with model %s\n", o.name, len(messages), model)
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

// toChatMessages converts transcript messages into the wire representation.
func toChatMessages(messages []agent.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return out
}
