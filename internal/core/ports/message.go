package ports

import (
	"context"
	"time"

	"github.com/campusworks/campus-api/internal/core/domain"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// FindConversation returns all messages exchanged between two users,
	// in either direction, ordered by creation time ascending.
	FindConversation(ctx context.Context, userA, userB string) ([]*domain.Message, error)
	// FindByParticipant returns every message the user sent or received,
	// ordered by creation time ascending.
	FindByParticipant(ctx context.Context, userID string) ([]*domain.Message, error)
	Delete(ctx context.Context, id string) error
}

// MessageReadRepository tracks per-user read receipts.
type MessageReadRepository interface {
	// MarkRead records a receipt for each message. Receipts that already
	// exist are not an error.
	MarkRead(ctx context.Context, messageIDs []string, userID string, at time.Time) error
	// ReadMessageIDs reports which of the given messages the user has
	// read. An empty input yields an empty result.
	ReadMessageIDs(ctx context.Context, messageIDs []string, userID string) (map[string]bool, error)
}

// MessageService defines the direct-message use cases. The sender is
// always the caller identity; deletion is sender-only, and read state
// is tracked per recipient.
type MessageService interface {
	Send(ctx context.Context, recipientID, content string, caller domain.Identity) (*domain.Message, error)
	Conversation(ctx context.Context, peerID string, caller domain.Identity) ([]*domain.Message, error)
	// Conversations lists the caller's threads, most recent first, with
	// unread counts.
	Conversations(ctx context.Context, caller domain.Identity) ([]*domain.Conversation, error)
	// MarkConversationRead records the caller as having read every
	// message a peer has sent them so far.
	MarkConversationRead(ctx context.Context, peerID string, caller domain.Identity) error
	Delete(ctx context.Context, id string, caller domain.Identity) error
}
