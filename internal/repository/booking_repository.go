package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lenderapp/lender/internal/apperr"
	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/repository/base"
)

// oneActivePerUser is the partial unique index enforcing a single pending or
// approved booking per user at the storage level.
const oneActivePerUser = "bookings_one_active_per_user"

type BookingRepository struct {
	db base.DBTX
}

func NewBookingRepository(db base.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a new pending booking. A concurrent active booking by the
// same user trips the partial unique index and is reported as
// apperr.ErrActiveBookingExists.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (slot_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		booking.SlotID,
		booking.UserID,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		if base.IsUniqueViolation(err, oneActivePerUser) {
			return fmt.Errorf("create booking: %w", apperr.ErrActiveBookingExists)
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID returns the booking, or nil when it does not exist.
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, slot_id, user_id, status, admin_notes, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking model.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.UserID,
		&booking.Status,
		&booking.AdminNotes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return &booking, nil
}

// ListByUser returns a user's bookings newest-first with slots attached.
func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.slot_id, b.user_id, b.status, b.admin_notes, b.created_at, b.updated_at,
		       s.id, s.date, s.start_time::text, s.duration, s.status, s.notes, s.created_at, s.updated_at
		FROM bookings b
		JOIN slots s ON s.id = b.slot_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		var booking model.Booking
		var slot model.Slot
		err := rows.Scan(
			&booking.ID,
			&booking.SlotID,
			&booking.UserID,
			&booking.Status,
			&booking.AdminNotes,
			&booking.CreatedAt,
			&booking.UpdatedAt,
			&slot.ID,
			&slot.Date,
			&slot.StartTime,
			&slot.Duration,
			&slot.Status,
			&slot.Notes,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		booking.Slot = &slot
		bookings = append(bookings, &booking)
	}

	return bookings, rows.Err()
}

// HasActive reports whether the user holds a pending or approved booking.
func (r *BookingRepository) HasActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND status IN ('pending', 'approved')
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active booking: %w", err)
	}

	return exists, nil
}

// HasActiveForSlot reports whether a pending or approved booking references
// the slot.
func (r *BookingRepository) HasActiveForSlot(ctx context.Context, slotID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE slot_id = $1 AND status IN ('pending', 'approved')
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, slotID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active booking for slot: %w", err)
	}

	return exists, nil
}

// FindActiveBySlot returns the pending or approved booking referencing the
// slot, or nil when there is none.
func (r *BookingRepository) FindActiveBySlot(ctx context.Context, slotID uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, slot_id, user_id, status, admin_notes, created_at, updated_at
		FROM bookings
		WHERE slot_id = $1 AND status IN ('pending', 'approved')
		LIMIT 1
	`

	var booking model.Booking
	err := r.db.QueryRow(ctx, query, slotID).Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.UserID,
		&booking.Status,
		&booking.AdminNotes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active booking by slot: %w", err)
	}

	return &booking, nil
}

// UpdateStatusFrom moves the booking from one status to another, keeping
// existing admin notes when none are given. Reports whether the row moved.
func (r *BookingRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to model.BookingStatus, adminNotes *string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $1, admin_notes = COALESCE($2, admin_notes), updated_at = now()
		WHERE id = $3 AND status = $4
	`

	tag, err := r.db.Exec(ctx, query, to, adminNotes, id, from)
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// CountByStatus counts bookings in the given status.
func (r *BookingRepository) CountByStatus(ctx context.Context, status model.BookingStatus) (int, error) {
	query := `SELECT count(*) FROM bookings WHERE status = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}
