// Package notify drains the notification queue and sends transactional
// email. The queue contract: consume rows where processed is false, attempt
// delivery, flag processed only after a successful send. A failed send
// leaves the row unprocessed and the next poll retries it.
package notify

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/storage"
)

// batchSize caps how many notifications one poll handles.
const batchSize = 10

// retryBase is the first backoff step between send attempts. A variable so
// tests can shrink it.
var retryBase = time.Second

// Dispatcher polls the queue on an interval and sends pending emails.
type Dispatcher struct {
	notifications storage.NotificationRepo
	sender        Sender
	interval      time.Duration
	logger        *zap.Logger
	stopChan      chan struct{}
}

func NewDispatcher(notifications storage.NotificationRepo, sender Sender, interval time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		sender:        sender,
		interval:      interval,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Run polls until the context is cancelled or Stop is called. The first
// drain happens immediately on start.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info("Starting notification dispatcher",
		zap.Duration("interval", d.interval))

	d.drain(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.drain(ctx)
		case <-d.stopChan:
			d.logger.Info("Notification dispatcher stopped")
			return
		case <-ctx.Done():
			d.logger.Info("Notification dispatcher cancelled")
			return
		}
	}
}

// Stop ends the poll loop.
func (d *Dispatcher) Stop() {
	close(d.stopChan)
}

// drain processes one batch of unprocessed notifications. Each row is
// handled independently: a failed send is logged and left for the next
// poll, and never blocks the rest of the batch.
func (d *Dispatcher) drain(ctx context.Context) {
	notifications, err := d.notifications.ListUnprocessed(ctx, batchSize)
	if err != nil {
		d.logger.Error("Failed to list unprocessed notifications", zap.Error(err))
		return
	}

	for _, n := range notifications {
		if err := d.deliver(ctx, n); err != nil {
			d.logger.Error("Failed to deliver notification",
				zap.String("notification_id", n.ID.String()),
				zap.String("kind", string(n.Kind)),
				zap.Error(err),
			)
			continue
		}

		// Flag strictly after the send succeeded: a crash in between
		// means a duplicate email, never a lost one.
		if err := d.notifications.MarkProcessed(ctx, n.ID); err != nil {
			d.logger.Error("Failed to mark notification processed",
				zap.String("notification_id", n.ID.String()),
				zap.Error(err),
			)
			continue
		}

		d.logger.Info("Notification sent",
			zap.String("notification_id", n.ID.String()),
			zap.String("kind", string(n.Kind)),
			zap.String("recipient", n.RecipientEmail),
		)
	}
}

// deliver sends one email, retrying transient failures with capped
// exponential backoff inside the poll cycle.
func (d *Dispatcher) deliver(ctx context.Context, n *model.Notification) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := d.sender.Send(ctx, n.RecipientEmail, Subject(n), Body(n))
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
