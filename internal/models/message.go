package models

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single conversational turn sent to the model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
