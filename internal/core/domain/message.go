package domain

import (
	"errors"
	"time"
)

var ErrEmptyMessage = errors.New("message body cannot be empty")

// Message is a single chat message inside a conversation between a user and
// the agency. Delivery to live listeners goes over the realtime channel; the
// stored record is the source of truth.
type Message struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	ConversationID string    `json:"conversation_id" bson:"conversation_id"`
	SenderID       string    `json:"sender_id" bson:"sender_id"`
	SenderRole     string    `json:"sender_role" bson:"sender_role"`
	Body           string    `json:"body" bson:"body"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
