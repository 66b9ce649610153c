// Package metrics defines and registers all custom Prometheus metrics for
// the agency API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry at init
// time via promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agency"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly booked orders.
// Label:
//   - service_type: the free-text service category chosen by the customer
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by service type.",
	},
	[]string{"service_type"},
)

// OrderTransitionsTotal counts committed admin status transitions.
// Labels:
//   - status: the new order status (e.g. "Processing")
//   - action: the admin intent ("accept", "reject", "update", or empty)
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of committed order status transitions.",
	},
	[]string{"status", "action"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationAttemptsTotal counts delivery attempts by channel and outcome.
// Labels:
//   - channel: "email" or "realtime"
//   - outcome: "sent" or "failed"
var NotificationAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_attempts_total",
		Help:      "Total number of notification delivery attempts, by channel and outcome.",
	},
	[]string{"channel", "outcome"},
)

// NotifyQueueDepth tracks the number of jobs waiting in each dispatcher
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of notification jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDeliveryDuration measures how long the full fan-out for one
// transition takes, from dequeue to last outcome record.
// Label:
//   - action: the admin action that triggered the fan-out
var NotificationDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_delivery_duration_seconds",
		Help:      "Duration of the notification fan-out from dequeue to completion.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)
