package domain

// Role identifies who produced a chat message.
type Role string

const (
	RoleUser           Role = "user"
	RoleAssistant      Role = "assistant"
	RoleAssistantError Role = "assistant-error"
)

// ChatMessage is one entry in the question/answer transcript. The
// transcript is append-only; messages are never edited once added.
type ChatMessage struct {
	Role Role
	Text string
}
