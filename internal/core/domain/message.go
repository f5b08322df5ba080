package domain

import "time"

// Message is a direct message between two users. SenderID is immutable
// after creation and drives the ownership check on deletion.
type Message struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	SenderID    string    `json:"sender_id" bson:"sender_id"`
	RecipientID string    `json:"recipient_id" bson:"recipient_id"`
	Content     string    `json:"content" bson:"content"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// MessageRead is one user's read receipt for one message. The
// (message, user) pair is unique in the store.
type MessageRead struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	MessageID string    `json:"message_id" bson:"message_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	ReadAt    time.Time `json:"read_at" bson:"read_at"`
}

// Conversation summarizes one user's exchange with a single peer: the
// most recent message and how many incoming messages are still unread.
type Conversation struct {
	PeerID      string   `json:"peer_id"`
	LastMessage *Message `json:"last_message,omitempty"`
	UnreadCount int      `json:"unread_count"`
}
