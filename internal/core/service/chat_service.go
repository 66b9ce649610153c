package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rankforge/agency-api/internal/core/domain"
	"github.com/rankforge/agency-api/internal/core/ports"
)

const defaultMessageLimit = 100

// ChatService persists chat messages and pushes them to live listeners.
// The realtime push is best effort; the stored message is the source of
// truth and a missed push only costs a live update.
type ChatService struct {
	repo      ports.MessageRepository
	publisher ports.RealtimePublisher
	log       zerolog.Logger
}

func NewChatService(repo ports.MessageRepository, publisher ports.RealtimePublisher, log zerolog.Logger) *ChatService {
	return &ChatService{repo: repo, publisher: publisher, log: log}
}

// SendMessage stores a message and publishes it to the conversation channel.
// Non-admin senders may only write to their own conversation.
func (s *ChatService) SendMessage(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, domain.ErrEmptyMessage
	}
	if !input.Sender.IsAdmin() && input.ConversationID != input.Sender.UserID {
		return nil, domain.ErrForbidden
	}

	msg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: input.ConversationID,
		SenderID:       input.Sender.UserID,
		SenderRole:     input.Sender.Role,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("conversation_id", input.ConversationID).Msg("failed to store message")
		return nil, err
	}

	if err := s.publisher.Publish(ctx, domain.ChatChannel(msg.ConversationID), msg); err != nil {
		s.log.Warn().Err(err).Str("message_id", msg.ID).Msg("realtime publish failed")
	}
	// Admins also get pinged about user messages on their aggregate channel.
	if input.Sender.Role != domain.RoleAdmin {
		event := map[string]any{"type": "chat.message", "conversation_id": msg.ConversationID}
		if err := s.publisher.Publish(ctx, domain.AdminOrdersChannel, event); err != nil {
			s.log.Warn().Err(err).Str("message_id", msg.ID).Msg("admin publish failed")
		}
	}

	return msg, nil
}

// ListMessages returns the most recent messages of a conversation. Non-admin
// callers may only read their own conversation.
func (s *ChatService) ListMessages(ctx context.Context, who ports.Identity, conversationID string) ([]*domain.Message, error) {
	if !who.IsAdmin() && conversationID != who.UserID {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByConversation(ctx, conversationID, defaultMessageLimit)
}
