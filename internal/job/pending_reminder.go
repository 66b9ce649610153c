package job

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rankforge/agency-api/internal/core/domain"
	"github.com/rankforge/agency-api/internal/core/ports"
)

// PendingReminderJob counts orders still awaiting an admin response and pings
// the admin realtime channel so the dashboard can surface the backlog.
type PendingReminderJob struct {
	orders    ports.OrderRepository
	publisher ports.RealtimePublisher
	log       zerolog.Logger
}

func NewPendingReminderJob(orders ports.OrderRepository, publisher ports.RealtimePublisher, log zerolog.Logger) *PendingReminderJob {
	return &PendingReminderJob{orders: orders, publisher: publisher, log: log}
}

func (j *PendingReminderJob) Name() string { return "pending-orders-reminder" }

func (j *PendingReminderJob) Run(ctx context.Context) error {
	count, err := j.orders.CountByStatus(ctx, domain.StatusPending)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	payload := map[string]any{
		"event":         "orders.pending_reminder",
		"pending_count": count,
		"at":            time.Now().UTC(),
	}
	if err := j.publisher.Publish(ctx, domain.AdminOrdersChannel, payload); err != nil {
		// Reminder is advisory; next tick retries.
		j.log.Warn().Err(err).Int64("pending", count).Msg("pending reminder publish failed")
		return nil
	}
	j.log.Debug().Int64("pending", count).Msg("pending reminder published")
	return nil
}
