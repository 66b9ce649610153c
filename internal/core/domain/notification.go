package domain

import "time"

// Notification channels and outcomes.
const (
	ChannelEmail    = "email"
	ChannelRealtime = "realtime"

	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

// AdminOrdersChannel receives events about new and updated orders for any
// listening admin UI.
const AdminOrdersChannel = "admin:orders"

// UserChannel names the realtime channel a single user listens on.
func UserChannel(userID string) string {
	return "user:" + userID
}

// ChatChannel names the realtime channel for a conversation.
func ChatChannel(conversationID string) string {
	return "chat:" + conversationID
}

// Notification is the durable record of a single best-effort delivery
// attempt. Exactly one attempt is made per record; there is no retry, so a
// failed record stays failed.
type Notification struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	OrderID   string    `json:"order_id" bson:"order_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Channel   string    `json:"channel" bson:"channel"`
	Outcome   string    `json:"outcome" bson:"outcome"`
	Error     string    `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
