package domain

import "time"

// MessageFrom identifies the author of a chat message.
type MessageFrom string

const (
	MessageFromUser      MessageFrom = "user"
	MessageFromAssistant MessageFrom = "assistant"
)

// Conversation is a user's chat session with the assistant. It is created
// lazily on the first chat interaction.
type Conversation struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	UserID    string    `gorm:"type:text;not null;index:idx_conversations_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Conversation.
func (Conversation) TableName() string {
	return "conversations"
}

// Message is a single entry in a conversation's append-only log.
type Message struct {
	ID             string      `gorm:"type:text;primaryKey" json:"id"`
	ConversationID string      `gorm:"type:text;not null;index:idx_messages_conversation" json:"conversation_id"`
	From           MessageFrom `gorm:"column:author;type:text;not null" json:"from"`
	Text           string      `gorm:"type:text" json:"text"`
	CreatedAt      time.Time   `gorm:"index:idx_messages_created" json:"created_at"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string {
	return "messages"
}

// RateBucket is a shared fixed-window request counter keyed by user. It backs
// the store-based rate limiter so the limit holds across instances.
type RateBucket struct {
	Key         string    `gorm:"type:text;primaryKey"`
	WindowStart time.Time `gorm:"not null"`
	Count       int       `gorm:"not null"`
	UpdatedAt   time.Time
}

// TableName returns the database table name for RateBucket.
func (RateBucket) TableName() string {
	return "rate_buckets"
}
