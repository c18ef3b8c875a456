package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Awaiting an admin decision
	BookingStatusApproved  BookingStatus = "approved"  // Admin approved the loan
	BookingStatusRejected  BookingStatus = "rejected"  // Admin rejected the request
	BookingStatusCancelled BookingStatus = "cancelled" // Rider withdrew while pending
	BookingStatusCompleted BookingStatus = "completed" // Loan window elapsed
)

// ActiveBookingStatuses are the statuses that count as an active booking: a
// user may hold at most one booking in these statuses at a time.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusApproved}

type Booking struct {
	ID         uuid.UUID     `json:"id"`
	SlotID     uuid.UUID     `json:"slot_id"`
	UserID     uuid.UUID     `json:"user_id"`
	Status     BookingStatus `json:"status"`
	AdminNotes *string       `json:"admin_notes"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	// Slot is attached by list/get queries for convenience, not stored on
	// the bookings row itself.
	Slot *Slot `json:"slot,omitempty"`
}

// IsActive checks if the booking blocks the user from requesting another slot
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusApproved
}

// IsPending checks if the booking is still awaiting a decision
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}
