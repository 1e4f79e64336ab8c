package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

const (
	maxDeliveryAttempts = 3
	deliveryTimeout     = 5 * time.Second
	retryBackoff        = 100 * time.Millisecond
)

type job struct {
	id           uuid.UUID
	notification model.Notification
}

// NotificationDispatcher persists seller notifications asynchronously so
// request handlers never block on notification writes. Jobs queued before
// Stop are drained before shutdown completes.
type NotificationDispatcher struct {
	notifications repository.NotificationRepository
	logger        *slog.Logger

	jobs    chan job
	workers int

	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
}

// NewNotificationDispatcher constructs the dispatcher with a bounded queue.
func NewNotificationDispatcher(notifications repository.NotificationRepository, workers, queueSize int, logger *slog.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &NotificationDispatcher{
		notifications: notifications,
		logger:        logger,
		jobs:          make(chan job, queueSize),
		workers:       workers,
	}
}

// Publish enqueues a notification for background delivery. Returns false when
// the queue is full or the dispatcher has stopped; callers treat a drop as
// non-fatal.
func (d *NotificationDispatcher) Publish(notification model.Notification) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}

	select {
	case d.jobs <- job{id: uuid.New(), notification: notification}:
		return true
	default:
		return false
	}
}

// Start launches the worker pool.
func (d *NotificationDispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.stopped {
		return
	}
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop rejects further publishes and waits until queued jobs are delivered.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobs)
	started := d.started
	d.mu.Unlock()

	if started {
		d.wg.Wait()
	}
}

func (d *NotificationDispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.deliver(j)
	}
}

func (d *NotificationDispatcher) deliver(j job) {
	// Delivery runs on its own context so drained jobs still land during
	// shutdown.
	var lastErr error
	for attempt := 1; attempt <= maxDeliveryAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		_, err := d.notifications.Create(ctx, j.notification)
		cancel()
		if err == nil {
			if attempt > 1 {
				d.logger.Info("notification delivered after retry",
					slog.String("job", j.id.String()),
					slog.Int("attempt", attempt))
			}
			return
		}
		lastErr = err
		time.Sleep(retryBackoff * time.Duration(attempt))
	}

	d.logger.Error("notification delivery failed",
		slog.String("job", j.id.String()),
		slog.Int64("seller", j.notification.SellerID),
		slog.String("error", lastErr.Error()))
}
