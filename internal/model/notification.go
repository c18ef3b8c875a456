package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationBookingApproved NotificationKind = "booking_approved"
	NotificationBookingRejected NotificationKind = "booking_rejected"
)

// Notification is one queued outbound email. Rows are written by the booking
// decision and drained by the notifier worker; the slot and recipient fields
// are a snapshot taken at decision time so the worker never has to re-join
// against slots, bookings or profiles.
type Notification struct {
	ID             uuid.UUID        `json:"id"`
	BookingID      uuid.UUID        `json:"booking_id"`
	Kind           NotificationKind `json:"notification_type"`
	RecipientEmail string           `json:"recipient_email"`
	RecipientName  *string          `json:"recipient_name"`
	SlotDate       time.Time        `json:"slot_date"`
	SlotTime       string           `json:"slot_time"`
	SlotDuration   SlotDuration     `json:"slot_duration"`
	Processed      bool             `json:"processed"`
	CreatedAt      time.Time        `json:"created_at"`
}
