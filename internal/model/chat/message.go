package chat

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Category tells the transcript view how to present a message.
type Category string

const (
	CategoryNormal   Category = "normal"
	CategoryCrisis   Category = "crisis"
	CategoryResource Category = "resource"
)

// Message is a single transcript entry. It is never mutated once appended.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId,omitempty"`
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"timestamp"`
}

// IsCrisis reports whether the message carries the crisis response.
func (m Message) IsCrisis() bool {
	return m.Category == CategoryCrisis
}
