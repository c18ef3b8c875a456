package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/repository/base"
)

type NotificationRepository struct {
	db base.DBTX
}

func NewNotificationRepository(db base.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create enqueues a notification with processed = false.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notification_queue
			(booking_id, notification_type, recipient_email, recipient_name,
			 slot_date, slot_time, slot_duration)
		VALUES ($1, $2, $3, $4, $5, $6::time, $7)
		RETURNING id, processed, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		n.BookingID,
		n.Kind,
		n.RecipientEmail,
		n.RecipientName,
		n.SlotDate,
		n.SlotTime,
		n.SlotDuration,
	).Scan(&n.ID, &n.Processed, &n.CreatedAt)

	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

// ListUnprocessed returns up to limit unprocessed notifications, oldest first.
func (r *NotificationRepository) ListUnprocessed(ctx context.Context, limit int) ([]*model.Notification, error) {
	query := `
		SELECT id, booking_id, notification_type, recipient_email, recipient_name,
		       slot_date, slot_time::text, slot_duration, processed, created_at
		FROM notification_queue
		WHERE processed = false
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list unprocessed notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(
			&n.ID,
			&n.BookingID,
			&n.Kind,
			&n.RecipientEmail,
			&n.RecipientName,
			&n.SlotDate,
			&n.SlotTime,
			&n.SlotDuration,
			&n.Processed,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// MarkProcessed flags the notification as delivered.
func (r *NotificationRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notification_queue SET processed = true WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark notification processed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark notification processed: notification not found")
	}

	return nil
}
