package ai

// Role identifies the author of a chat turn.
type Role string

const (
	// RoleUser is a human question or message.
	RoleUser Role = "user"
	// RoleAssistant is a previous assistant answer.
	RoleAssistant Role = "assistant"
)

// ChatTurn is one prior message in a conversation, oldest first.
type ChatTurn struct {
	Role    Role
	Content string
}
