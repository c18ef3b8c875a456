package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lenderapp/lender/internal/apperr"
	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/storage"
)

type SlotService struct {
	store  storage.Store
	logger *zap.Logger
}

func NewSlotService(store storage.Store, logger *zap.Logger) *SlotService {
	return &SlotService{
		store:  store,
		logger: logger,
	}
}

type CreateSlotInput struct {
	Date      time.Time
	StartTime string
	Duration  model.SlotDuration
	Notes     *string
}

// Create publishes a new available slot. The duplicate-date check is an
// advisory lookup, not a storage constraint: two concurrent creates for the
// same date can both succeed.
func (s *SlotService) Create(ctx context.Context, actorID uuid.UUID, input CreateSlotInput) (*model.Slot, error) {
	if err := requireAdmin(ctx, s.store, actorID); err != nil {
		return nil, err
	}

	if input.Date.IsZero() {
		return nil, fmt.Errorf("date is required: %w", apperr.ErrValidation)
	}

	date := dateOnly(input.Date)
	if date.Before(dateOnly(time.Now())) {
		return nil, fmt.Errorf("date is in the past: %w", apperr.ErrValidation)
	}

	if _, err := time.Parse("15:04", input.StartTime); err != nil {
		if _, err := time.Parse("15:04:05", input.StartTime); err != nil {
			return nil, fmt.Errorf("invalid start time %q: %w", input.StartTime, apperr.ErrValidation)
		}
	}

	if !input.Duration.IsValid() {
		return nil, fmt.Errorf("unknown duration %q: %w", input.Duration, apperr.ErrValidation)
	}

	existing, err := s.store.Slots().FindActiveByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("check existing slot: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("a slot already exists on %s: %w",
			date.Format("2006-01-02"), apperr.ErrConflict)
	}

	slot := &model.Slot{
		Date:      date,
		StartTime: input.StartTime,
		Duration:  input.Duration,
		Status:    model.SlotStatusAvailable,
		Notes:     input.Notes,
	}

	if err := s.store.Slots().Create(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("date", date.Format("2006-01-02")),
		zap.String("duration", string(slot.Duration)),
	)

	return slot, nil
}

// ListAvailable returns available slots on or after the given date, ordered
// by date ascending.
func (s *SlotService) ListAvailable(ctx context.Context, asOf time.Time) ([]*model.Slot, error) {
	return s.store.Slots().ListAvailable(ctx, dateOnly(asOf))
}

// Get returns the slot by id.
func (s *SlotService) Get(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	slot, err := s.store.Slots().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %s: %w", id, apperr.ErrNotFound)
	}
	return slot, nil
}

// Delete removes a slot that no pending or approved booking references.
func (s *SlotService) Delete(ctx context.Context, actorID, slotID uuid.UUID) error {
	if err := requireAdmin(ctx, s.store, actorID); err != nil {
		return err
	}

	slot, err := s.store.Slots().GetByID(ctx, slotID)
	if err != nil {
		return err
	}
	if slot == nil {
		return fmt.Errorf("slot %s: %w", slotID, apperr.ErrNotFound)
	}

	inUse, err := s.store.Bookings().HasActiveForSlot(ctx, slotID)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("slot has an active booking: %w", apperr.ErrConflict)
	}

	if err := s.store.Slots().Delete(ctx, slotID); err != nil {
		return err
	}

	s.logger.Info("Slot deleted",
		zap.String("slot_id", slotID.String()),
		zap.String("date", slot.Date.Format("2006-01-02")),
	)

	return nil
}

// MarkCompleted closes out an elapsed loan: the slot moves booked ->
// completed and the approved booking, if any, moves with it. Calling it on
// an already completed slot is a no-op.
func (s *SlotService) MarkCompleted(ctx context.Context, actorID, slotID uuid.UUID) error {
	if err := requireAdmin(ctx, s.store, actorID); err != nil {
		return err
	}

	return s.store.RunInTx(ctx, func(tx storage.Store) error {
		slot, err := tx.Slots().GetByID(ctx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return fmt.Errorf("slot %s: %w", slotID, apperr.ErrNotFound)
		}

		if slot.Status == model.SlotStatusCompleted {
			return nil
		}

		moved, err := tx.Slots().Complete(ctx, slotID)
		if err != nil {
			return err
		}
		if !moved {
			return fmt.Errorf("slot is %s, not booked: %w", slot.Status, apperr.ErrInvalidState)
		}

		booking, err := tx.Bookings().FindActiveBySlot(ctx, slotID)
		if err != nil {
			return err
		}
		if booking != nil && booking.Status == model.BookingStatusApproved {
			if _, err := tx.Bookings().UpdateStatusFrom(ctx, booking.ID,
				model.BookingStatusApproved, model.BookingStatusCompleted, nil); err != nil {
				return err
			}
		}

		s.logger.Info("Slot completed", zap.String("slot_id", slotID.String()))
		return nil
	})
}
