package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/core/ports"
)

// MessageService implements direct messages. The sender is always the
// caller; a message can only be deleted by its sender. Read receipts
// are recorded per recipient and drive the unread counts in the
// conversation listing.
type MessageService struct {
	repo   ports.MessageRepository
	reads  ports.MessageReadRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewMessageService(repo ports.MessageRepository, reads ports.MessageReadRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, reads: reads, logger: logger, now: time.Now}
}

func (s *MessageService) Send(ctx context.Context, recipientID, content string, caller domain.Identity) (*domain.Message, error) {
	m := &domain.Message{
		SenderID:    caller.UserID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("message_id", created.ID).Str("recipient_id", recipientID).Msg("message sent")
	return created, nil
}

// Conversation returns the full exchange between the caller and a peer.
func (s *MessageService) Conversation(ctx context.Context, peerID string, caller domain.Identity) ([]*domain.Message, error) {
	return s.repo.FindConversation(ctx, caller.UserID, peerID)
}

// Conversations folds the caller's messages into one summary per peer,
// most recently active first.
func (s *MessageService) Conversations(ctx context.Context, caller domain.Identity) ([]*domain.Conversation, error) {
	msgs, err := s.repo.FindByParticipant(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	byPeer := make(map[string]*domain.Conversation)
	var incoming []string
	for _, m := range msgs {
		peer := m.RecipientID
		if m.RecipientID == caller.UserID {
			peer = m.SenderID
			incoming = append(incoming, m.ID)
		}
		conv, ok := byPeer[peer]
		if !ok {
			conv = &domain.Conversation{PeerID: peer}
			byPeer[peer] = conv
		}
		// Messages arrive oldest first, so the last assignment wins.
		conv.LastMessage = m
	}

	read, err := s.reads.ReadMessageIDs(ctx, incoming, caller.UserID)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		if m.RecipientID != caller.UserID || read[m.ID] {
			continue
		}
		byPeer[m.SenderID].UnreadCount++
	}

	out := make([]*domain.Conversation, 0, len(byPeer))
	for _, conv := range byPeer {
		out = append(out, conv)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})
	return out, nil
}

// MarkConversationRead records receipts for every message the peer has
// sent the caller that is not already read.
func (s *MessageService) MarkConversationRead(ctx context.Context, peerID string, caller domain.Identity) error {
	msgs, err := s.repo.FindConversation(ctx, caller.UserID, peerID)
	if err != nil {
		return err
	}

	var incoming []string
	for _, m := range msgs {
		if m.RecipientID == caller.UserID {
			incoming = append(incoming, m.ID)
		}
	}
	if len(incoming) == 0 {
		return nil
	}

	read, err := s.reads.ReadMessageIDs(ctx, incoming, caller.UserID)
	if err != nil {
		return err
	}
	var unread []string
	for _, id := range incoming {
		if !read[id] {
			unread = append(unread, id)
		}
	}
	if len(unread) == 0 {
		return nil
	}
	return s.reads.MarkRead(ctx, unread, caller.UserID, s.now().UTC())
}

func (s *MessageService) Delete(ctx context.Context, id string, caller domain.Identity) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.AuthorizeOwner(caller, m.SenderID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
