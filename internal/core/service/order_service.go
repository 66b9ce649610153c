package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rankforge/agency-api/internal/api/metrics"
	"github.com/rankforge/agency-api/internal/core/domain"
	"github.com/rankforge/agency-api/internal/core/ports"
)

// OrderService implements order booking and the admin transition workflow.
type OrderService struct {
	repo      ports.OrderRepository
	notifier  ports.Notifier
	publisher ports.RealtimePublisher
	log       zerolog.Logger
}

func NewOrderService(
	repo ports.OrderRepository,
	notifier ports.Notifier,
	publisher ports.RealtimePublisher,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{repo: repo, notifier: notifier, publisher: publisher, log: log}
}

// CreateOrder books a new order with status Pending for the given user.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	order := &domain.Order{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		ServiceType: input.ServiceType,
		Description: input.Description,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(input.ServiceType).Inc()
	s.log.Info().Str("order_id", order.ID).Str("service_type", order.ServiceType).Msg("order created")

	// Nudge any listening admin UI about the new pending order. Publish
	// failure must not affect the booking.
	event := map[string]any{
		"type":     "order.created",
		"order_id": order.ID,
		"status":   string(order.Status),
	}
	if err := s.publisher.Publish(ctx, domain.AdminOrdersChannel, event); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish order.created event")
	}

	return order, nil
}

// ListOrders returns all orders for admins, only the caller's own otherwise.
func (s *OrderService) ListOrders(ctx context.Context, who ports.Identity) ([]*domain.Order, error) {
	filter := ports.ListOrdersFilter{}
	if !who.IsAdmin() {
		filter.UserID = who.UserID
	}
	return s.repo.List(ctx, filter)
}

// GetOrder returns a single order. Non-admin callers only see their own.
func (s *OrderService) GetOrder(ctx context.Context, who ports.Identity, orderID string) (*domain.Order, error) {
	userFilter := ""
	if !who.IsAdmin() {
		userFilter = who.UserID
	}
	return s.repo.FindByID(ctx, orderID, userFilter)
}

// Transition validates and applies an admin status change.
//
// The store mutation is the commit point: once it succeeds the caller gets
// the updated order back no matter what happens to the notification fan-out.
// There is deliberately no idempotency key: a duplicate submission produces
// a duplicate email and overwrites the response timestamp again.
func (s *OrderService) Transition(ctx context.Context, input ports.TransitionInput) (*domain.Order, error) {
	newStatus := domain.OrderStatus(input.Status)
	notes := strings.TrimSpace(input.AdminNotes)

	// 1. Validate before touching anything.
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, input.Status)
	}
	if domain.RequiresNotes(input.Action) && notes == "" {
		return nil, domain.ErrNotesRequired
	}

	// 2. The order must exist. No owner filter, this is an admin path.
	order, err := s.repo.FindByID(ctx, input.OrderID, "")
	if err != nil {
		return nil, err
	}

	// 3. Single write: status + notes + response timestamp. Last write wins
	// on concurrent transitions; there is no version check.
	respondedAt := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, order.ID, newStatus, notes, respondedAt); err != nil {
		s.log.Error().Err(err).Str("order_id", order.ID).Msg("status update failed")
		return nil, fmt.Errorf("transition order: %w", err)
	}

	order.Status = newStatus
	order.AdminNotes = notes
	order.AdminResponseAt = &respondedAt

	metrics.OrderTransitionsTotal.WithLabelValues(string(newStatus), input.Action).Inc()
	s.log.Info().
		Str("order_id", order.ID).
		Str("status", string(newStatus)).
		Str("action", input.Action).
		Msg("order transitioned")

	// 4. Fan out notifications for the actions that warrant them. The
	// dispatcher owns delivery; nothing past this point can fail the request.
	if domain.RequiresNotes(input.Action) {
		s.notifier.Notify(ports.OrderNotification{Order: *order, Action: input.Action})
	}

	return order, nil
}
