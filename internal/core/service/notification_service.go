package service

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rankforge/agency-api/internal/api/metrics"
	"github.com/rankforge/agency-api/internal/core/domain"
	"github.com/rankforge/agency-api/internal/core/ports"
)

// statusEmailTmpl renders the body of the status-change email sent to the
// order's owner.
var statusEmailTmpl = template.Must(template.New("status_email").Parse(strings.TrimSpace(`
Hello {{.Name}},

Your order for "{{.ServiceType}}" has been {{.Verb}}.

New status: {{.Status}}
{{- if .Notes}}

Notes from our team:
{{.Notes}}
{{- end}}

— The RankForge team
`)))

type statusEmailData struct {
	Name        string
	ServiceType string
	Verb        string
	Status      string
	Notes       string
}

// NotificationService performs the at-most-once delivery of the email and
// realtime event triggered by an order transition. Every attempt leaves an
// outcome record; no attempt is ever retried.
type NotificationService struct {
	orders    ports.OrderRepository
	users     ports.AuthRepository
	records   ports.NotificationRepository
	mailer    ports.Mailer
	publisher ports.RealtimePublisher
	log       zerolog.Logger
}

func NewNotificationService(
	orders ports.OrderRepository,
	users ports.AuthRepository,
	records ports.NotificationRepository,
	mailer ports.Mailer,
	publisher ports.RealtimePublisher,
	log zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		orders:    orders,
		users:     users,
		records:   records,
		mailer:    mailer,
		publisher: publisher,
		log:       log,
	}
}

// Deliver runs the full fan-out for one transition: email first, then the
// realtime event. Failures are logged and recorded, never returned: by the
// time a job reaches this point the order mutation has already committed.
func (s *NotificationService) Deliver(ctx context.Context, job ports.OrderNotification) {
	order := job.Order

	// 1. Email to the order's owner.
	owner, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("owner lookup failed, skipping email")
		s.record(ctx, order, domain.ChannelEmail, err)
	} else {
		emailErr := s.sendStatusEmail(ctx, owner, order, job.Action)
		s.record(ctx, order, domain.ChannelEmail, emailErr)

		if emailErr == nil {
			// Best-effort flag write. If this fails the flag stays stale even
			// though the email went out; that is accepted.
			if err := s.orders.MarkEmailSent(ctx, order.ID, time.Now().UTC()); err != nil {
				s.log.Warn().Err(err).Str("order_id", order.ID).Msg("failed to set email-sent flag")
			}
		}
	}

	// 2. Realtime event for the owner and any listening admin UI.
	event := map[string]any{
		"type":     "order.updated",
		"order_id": order.ID,
		"status":   string(order.Status),
		"action":   job.Action,
	}
	pubErr := s.publisher.Publish(ctx, domain.UserChannel(order.UserID), event)
	if pubErr == nil {
		pubErr = s.publisher.Publish(ctx, domain.AdminOrdersChannel, event)
	}
	if pubErr != nil {
		s.log.Warn().Err(pubErr).Str("order_id", order.ID).Msg("realtime publish failed")
	}
	s.record(ctx, order, domain.ChannelRealtime, pubErr)
}

func (s *NotificationService) sendStatusEmail(ctx context.Context, owner *domain.User, order domain.Order, action string) error {
	var body strings.Builder
	data := statusEmailData{
		Name:        owner.Name,
		ServiceType: order.ServiceType,
		Verb:        actionVerb(action),
		Status:      string(order.Status),
		Notes:       order.AdminNotes,
	}
	if err := statusEmailTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render status email: %w", err)
	}

	subject := fmt.Sprintf("Your RankForge order is now %s", order.Status)
	if err := s.mailer.Send(ctx, owner.Email, subject, body.String()); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Str("to", owner.Email).Msg("email send failed")
		return err
	}

	s.log.Info().Str("order_id", order.ID).Str("to", owner.Email).Msg("status email sent")
	return nil
}

// record persists the delivery attempt outcome. A failure to write the audit
// record itself is only logged; the audit trail is best effort too.
func (s *NotificationService) record(ctx context.Context, order domain.Order, channel string, attemptErr error) {
	n := &domain.Notification{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		Channel:   channel,
		Outcome:   domain.OutcomeSent,
		CreatedAt: time.Now().UTC(),
	}
	if attemptErr != nil {
		n.Outcome = domain.OutcomeFailed
		n.Error = attemptErr.Error()
	}

	metrics.NotificationAttemptsTotal.WithLabelValues(channel, n.Outcome).Inc()

	if err := s.records.Insert(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Str("channel", channel).Msg("failed to record notification outcome")
	}
}

func actionVerb(action string) string {
	switch action {
	case domain.ActionAccept:
		return "accepted"
	case domain.ActionReject:
		return "rejected"
	default:
		return "updated"
	}
}
