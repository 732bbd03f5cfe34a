package entity

// ConversationTurn is one exchange. Timestamp is ISO-8601 (RFC 3339) and
// Intent is the recognized intent tag.
type ConversationTurn struct {
	UserInput   string `json:"user_input"`
	BotResponse string `json:"bot_response"`
	Intent      string `json:"intent"`
	Timestamp   string `json:"timestamp"`
}
