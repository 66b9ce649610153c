package ports

import (
	"context"

	"github.com/rankforge/agency-api/internal/core/domain"
)

// Mailer sends a single email. The shipped implementation logs the rendered
// message instead of talking to a live provider.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// RealtimePublisher pushes an event onto a named channel for live listeners.
type RealtimePublisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// NotificationRepository stores the audit trail of delivery attempts.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Notification, error)
}

// NotificationService performs the actual at-most-once delivery for a job
// taken off the dispatcher queue.
type NotificationService interface {
	Deliver(ctx context.Context, job OrderNotification)
}
