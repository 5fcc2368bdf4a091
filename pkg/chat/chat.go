package chat

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant" // generator / narrator
	ChatRoleSystem    = "system"
)

// ChatMessage represents a single chat message in the conversation.
// This shape matches the OpenAI-style chat completion APIs and is used
// to structure messages sent to the LLM.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the generator's reply to a single request. For turn
// requests the message content holds a JSON blob the caller must parse.
type ChatResponse struct {
	Message ChatMessage `json:"message"`
}
