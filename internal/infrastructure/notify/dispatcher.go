package notify

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rankforge/agency-api/internal/api/metrics"
	"github.com/rankforge/agency-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes notification jobs to a fixed set of workers using
// consistent hashing on the order id, guaranteeing per-order delivery
// ordering. Enqueueing never fails the caller; delivery outcomes are the
// notification service's concern.
type Dispatcher struct {
	workers []chan ports.OrderNotification
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.OrderNotification, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.OrderNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify sends a job to the worker responsible for its order.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Notify(job ports.OrderNotification) {
	idx := d.shardIndex(job.Order.ID)
	d.workers[idx] <- job
	metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an order id deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.OrderNotification) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			d.service.Deliver(ctx, job)
			metrics.NotificationDeliveryDuration.WithLabelValues(job.Action).Observe(time.Since(start).Seconds())
			metrics.NotifyQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			d.log.Debug().
				Str("order_id", job.Order.ID).
				Str("action", job.Action).
				Int("worker_id", id).
				Msg("notification job delivered")
		}
	}
}
