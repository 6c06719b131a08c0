package chat

import "time"

// Sender identifies who authored a message.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one entry in the widget conversation. Immutable once created.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	IsError   bool      `json:"isError,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
