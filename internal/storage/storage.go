// Package storage defines the persistence boundary of the booking core.
// Two implementations exist: the postgres store under internal/repository
// and the in-memory fixture store used by tests and demo mode.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lenderapp/lender/internal/model"
)

// SlotRepo persists slots. Lookups return (nil, nil) when the row does not
// exist; state transitions are conditional single-row updates that report
// whether the row was actually moved.
type SlotRepo interface {
	Create(ctx context.Context, slot *model.Slot) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error)

	// ListAvailable returns available slots on or after the given date,
	// ordered by date ascending.
	ListAvailable(ctx context.Context, from time.Time) ([]*model.Slot, error)

	// FindActiveByDate returns an available or booked slot on the given
	// date, if one exists. Used by the advisory duplicate-date check.
	FindActiveByDate(ctx context.Context, date time.Time) (*model.Slot, error)

	// Claim moves the slot from available to booked. Returns false when
	// the slot was not available, leaving it untouched.
	Claim(ctx context.Context, id uuid.UUID) (bool, error)

	// Complete moves the slot from booked to completed. Returns false
	// when the slot was not booked, leaving it untouched.
	Complete(ctx context.Context, id uuid.UUID) (bool, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// ListWithBookings returns every slot joined with its active booking
	// and booker contact details, ordered by date ascending.
	ListWithBookings(ctx context.Context) ([]*model.SlotWithBooking, error)

	CountAvailable(ctx context.Context, from time.Time) (int, error)
}

// BookingRepo persists bookings.
type BookingRepo interface {
	// Create inserts a booking. The storage layer enforces the one active
	// booking per user invariant; a violation is reported as
	// apperr.ErrActiveBookingExists.
	Create(ctx context.Context, booking *model.Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)

	// ListByUser returns a user's bookings newest-first, each with its
	// slot attached.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error)

	// HasActive reports whether the user holds a pending or approved
	// booking. Advisory only: the insert-time constraint is what actually
	// guarantees the invariant under concurrency.
	HasActive(ctx context.Context, userID uuid.UUID) (bool, error)

	// HasActiveForSlot reports whether a pending or approved booking
	// references the slot. Used by the slot deletion guard.
	HasActiveForSlot(ctx context.Context, slotID uuid.UUID) (bool, error)

	// FindActiveBySlot returns the pending or approved booking referencing
	// the slot, or nil when there is none.
	FindActiveBySlot(ctx context.Context, slotID uuid.UUID) (*model.Booking, error)

	// UpdateStatusFrom moves the booking from one status to another,
	// optionally recording admin notes. Returns false when the booking
	// was not in the expected status, leaving it untouched.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to model.BookingStatus, adminNotes *string) (bool, error)

	CountByStatus(ctx context.Context, status model.BookingStatus) (int, error)
}

// NotificationRepo persists the outbound email queue. Rows are never
// deleted; the processed flag is the only mutation after insert.
type NotificationRepo interface {
	Create(ctx context.Context, n *model.Notification) error

	// ListUnprocessed returns up to limit unprocessed notifications,
	// oldest first.
	ListUnprocessed(ctx context.Context, limit int) ([]*model.Notification, error)

	MarkProcessed(ctx context.Context, id uuid.UUID) error
}

// ProfileRepo reads user profiles. The identity provider owns the rows.
type ProfileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// Store aggregates the repositories and provides transaction scoping.
type Store interface {
	Slots() SlotRepo
	Bookings() BookingRepo
	Notifications() NotificationRepo
	Profiles() ProfileRepo

	// RunInTx runs fn against a store whose writes commit or roll back as
	// a unit. The in-memory implementation serializes instead.
	RunInTx(ctx context.Context, fn func(Store) error) error
}
