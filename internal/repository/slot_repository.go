package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/repository/base"
)

type SlotRepository struct {
	db base.DBTX
}

func NewSlotRepository(db base.DBTX) *SlotRepository {
	return &SlotRepository{db: db}
}

const slotColumns = `id, date, start_time::text, duration, status, notes, created_at, updated_at`

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
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
		return nil, err
	}
	return &slot, nil
}

// Create inserts a new slot with status available.
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (date, start_time, duration, status, notes)
		VALUES ($1, $2::time, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		slot.Date,
		slot.StartTime,
		slot.Duration,
		slot.Status,
		slot.Notes,
	).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID returns the slot, or nil when it does not exist.
func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return slot, nil
}

// ListAvailable returns available slots on or after the given date.
func (r *SlotRepository) ListAvailable(ctx context.Context, from time.Time) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE status = 'available' AND date >= $1
		ORDER BY date ASC
	`

	rows, err := r.db.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// FindActiveByDate returns an available or booked slot on the given date.
func (r *SlotRepository) FindActiveByDate(ctx context.Context, date time.Time) (*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE date = $1 AND status IN ('available', 'booked')
		LIMIT 1
	`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, date))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find slot by date: %w", err)
	}

	return slot, nil
}

// Claim moves the slot available -> booked. Reports whether the row moved.
func (r *SlotRepository) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE slots
		SET status = 'booked', updated_at = now()
		WHERE id = $1 AND status = 'available'
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("claim slot: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Complete moves the slot booked -> completed. Reports whether the row moved.
func (r *SlotRepository) Complete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE slots
		SET status = 'completed', updated_at = now()
		WHERE id = $1 AND status = 'booked'
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("complete slot: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes the slot row.
func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM slots WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete slot: slot not found")
	}

	return nil
}

// ListWithBookings returns the admin overview from the slots_with_bookings
// view: every slot joined with its active booking and booker contact.
func (r *SlotRepository) ListWithBookings(ctx context.Context) ([]*model.SlotWithBooking, error) {
	query := `
		SELECT id, date, start_time::text, duration, status, notes, created_at, updated_at,
		       booking_id, booked_by, booking_status,
		       booker_email, booker_phone, booker_name, booker_previous_loans
		FROM slots_with_bookings
		ORDER BY date ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slots with bookings: %w", err)
	}
	defer rows.Close()

	var result []*model.SlotWithBooking
	for rows.Next() {
		var s model.SlotWithBooking
		err := rows.Scan(
			&s.ID,
			&s.Date,
			&s.StartTime,
			&s.Duration,
			&s.Status,
			&s.Notes,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.BookingID,
			&s.BookedBy,
			&s.BookingStatus,
			&s.BookerEmail,
			&s.BookerPhone,
			&s.BookerName,
			&s.BookerPreviousLoans,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot with booking: %w", err)
		}
		result = append(result, &s)
	}

	return result, rows.Err()
}

// CountAvailable counts available slots on or after the given date.
func (r *SlotRepository) CountAvailable(ctx context.Context, from time.Time) (int, error) {
	query := `SELECT count(*) FROM slots WHERE status = 'available' AND date >= $1`

	var count int
	if err := r.db.QueryRow(ctx, query, from).Scan(&count); err != nil {
		return 0, fmt.Errorf("count available slots: %w", err)
	}

	return count, nil
}
