package ports

import (
	"context"

	"github.com/rankforge/agency-api/internal/core/domain"
)

// CreateOrderInput carries all data needed to book a new order.
type CreateOrderInput struct {
	UserID      string
	ServiceType string
	Description string
}

// TransitionInput carries an admin-initiated status change request.
type TransitionInput struct {
	OrderID    string
	Status     string
	AdminNotes string
	// Action is the admin intent behind the transition: accept, reject or
	// update demand non-empty notes and trigger the notification fan-out.
	Action string
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	// ListOrders returns every order for admins and only the caller's own
	// orders otherwise.
	ListOrders(ctx context.Context, who Identity) ([]*domain.Order, error)
	GetOrder(ctx context.Context, who Identity, orderID string) (*domain.Order, error)
	// Transition validates and applies an admin status change, then hands the
	// notification fan-out to the notifier. The returned order reflects the
	// committed mutation regardless of any notification outcome.
	Transition(ctx context.Context, input TransitionInput) (*domain.Order, error)
}

// OrderNotification is the unit of work handed to the notification
// dispatcher after a transition commits.
type OrderNotification struct {
	Order  domain.Order
	Action string
}

// Notifier accepts notification jobs for asynchronous best-effort delivery.
// Implementations must never fail the caller.
type Notifier interface {
	Notify(job OrderNotification)
}
