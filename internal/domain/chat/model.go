package chat

import "time"

// Message is one chatbot exchange: what the user asked and what the bot
// answered, stored together.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
