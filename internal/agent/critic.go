package agent

// DefaultCritiquePrompt is the system prompt for the CRITIC role in a
// generator-critic pair. The closing instruction is what the stop predicate
// keys on.
const DefaultCritiquePrompt = "You are an expert reviewer. Provide critique and actionable recommendations " +
	"for the user's code. Be specific: name the function, line, or construct each point applies to. " +
	"If the code requires no further changes, reply with exactly '<OK>'."
