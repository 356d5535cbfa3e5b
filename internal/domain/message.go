package domain

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Attachment is an inline binary payload sent alongside a user turn.
type Attachment struct {
	Data     []byte
	MimeType string
}

// Message is one turn of a conversation. Messages are immutable once
// appended; ordering is insertion order.
type Message struct {
	ID             string
	ConversationID int64
	Role           string
	Content        string
	Attachment     *Attachment
	CreatedAt      time.Time
}

// Conversation groups the ordered message sequence for one user.
type Conversation struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
