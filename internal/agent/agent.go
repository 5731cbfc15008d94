package agent

// Role identifies the author of a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation entry. Messages are immutable once
// appended to a transcript.
type Message struct {
	Role    Role
	Content string
}

// Transcript is the ordered conversation state replayed to the completion
// provider. Appends return a fresh value so earlier snapshots stay valid.
type Transcript []Message

// Seed returns the initial transcript for a run: one system message
// followed by one user message.
func Seed(systemPrompt, userMsg string) Transcript {
	return Transcript{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: userMsg},
	}
}

// Append returns a new transcript with the message added. The receiver is
// left untouched, including its backing array.
func (t Transcript) Append(role Role, content string) Transcript {
	out := make(Transcript, len(t), len(t)+1)
	copy(out, t)
	return append(out, Message{Role: role, Content: content})
}

// Last returns the content of the most recent message with the given role,
// or "" if none exists.
func (t Transcript) Last(role Role) string {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Role == role {
			return t[i].Content
		}
	}
	return ""
}
