package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// System prompt presets selectable per tenant.
	SystemPromptSupport   = "You are a friendly and helpful customer support assistant. Be warm, conversational, and patient. Your goal is to make customers feel heard and help them solve their problems. Respond naturally like a real person would."
	SystemPromptSales     = "You are an enthusiastic and knowledgeable sales assistant. Help customers discover the perfect products or services for their needs. Be conversational, highlight benefits naturally, and guide them through their buying journey with genuine care."
	SystemPromptTechnical = "You are a patient and helpful technical support specialist. Explain things clearly without being condescending. Use conversational language while staying precise. Make technical help feel human and approachable."
	SystemPromptGeneral   = "You are a versatile, friendly AI assistant. Adapt your personality to each conversation. Be warm with greetings, helpful with questions, and always conversational. Chat naturally like a real person would."

	// RAGContextHeader precedes the retrieved chunks in the user prompt.
	RAGContextHeader = `Answer the customer's question using ONLY the knowledge base excerpts below. If the excerpts do not contain the answer, say you are not sure rather than inventing one.

=== KNOWLEDGE BASE ===
`

	// Canned replies for states where the model cannot or should not answer.
	AiDisabledMessage      = "AI is disabled for this agent"
	SmartFallbackMessage   = "I'm not sure about that from my current knowledge base. Would you like me to connect you with a human agent who can help you better?"
	HonestFallbackMessage  = "I'm not sure about that from my current knowledge base. Is there anything else I can help you with?"
	GenericErrorMessage    = "I'm sorry, I encountered an error while processing your request. Please try again or contact support."
	MissingContextMessage  = "I don't have access to my knowledge base at the moment. Let me connect you with a team member who can help you with that."
)

// ConversationalPhrases cover small talk beyond greetings; short
// messages containing one of these skip retrieval entirely.
var ConversationalPhrases = []string{
	"how are you", "how's it going", "how do you do",
	"nice to meet you", "thanks", "thank you", "bye", "goodbye",
	"good night", "see you", "take care", "cheers", "great",
	"awesome", "perfect", "cool", "ok", "okay",
}

// UncertaintyPhrases flag a generated answer that admits it has no
// grounding; substantive questions with such answers trigger the smart
// fallback reply.
var UncertaintyPhrases = []string{
	"i'm not sure about that",
	"i don't know",
	"not sure about that",
	"don't have information about",
	"cannot find information",
	"not in my knowledge base",
	"not available in my knowledge",
}

// SystemPromptFor resolves a tenant's preset name, defaulting to the
// support persona.
func SystemPromptFor(preset, custom string) string {
	if preset == "custom" && custom != "" {
		return custom
	}
	switch preset {
	case "sales":
		return SystemPromptSales
	case "technical":
		return SystemPromptTechnical
	case "general":
		return SystemPromptGeneral
	default:
		return SystemPromptSupport
	}
}
