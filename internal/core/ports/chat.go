package ports

import (
	"context"

	"github.com/rankforge/agency-api/internal/core/domain"
)

// MessageRepository defines persistence operations for chat messages.
type MessageRepository interface {
	Insert(ctx context.Context, m *domain.Message) error
	ListByConversation(ctx context.Context, conversationID string, limit int) ([]*domain.Message, error)
}

// SendMessageInput carries a chat message posted by the caller.
type SendMessageInput struct {
	ConversationID string
	Sender         Identity
	Body           string
}

// ChatService persists messages and pushes them to live listeners.
type ChatService interface {
	SendMessage(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	ListMessages(ctx context.Context, who Identity, conversationID string) ([]*domain.Message, error)
}
