package ports

import (
	"context"
	"time"

	"github.com/rankforge/agency-api/internal/core/domain"
)

// ListOrdersFilter carries query parameters for listing orders.
// UserID is always enforced by the service layer for non-admin callers.
type ListOrdersFilter struct {
	UserID string // empty = no filter (admin); non-empty = scoped to owner
	Status string // optional: filter by order status
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	// FindByID retrieves an order by id. When userID is non-empty, the query
	// is additionally filtered by owner (for RBAC).
	FindByID(ctx context.Context, id string, userID string) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, error)
	// UpdateStatus sets status, admin notes, and the admin response timestamp
	// in a single write. Returns domain.ErrOrderNotFound when no row matches.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, notes string, respondedAt time.Time) error
	// MarkEmailSent records that the status email went out. Best effort: the
	// caller is expected to swallow a failure.
	MarkEmailSent(ctx context.Context, id string, at time.Time) error
	// CountByStatus returns the number of orders currently in the given status.
	CountByStatus(ctx context.Context, status domain.OrderStatus) (int64, error)
}
