package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lenderapp/lender/internal/apperr"
	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/storage"
)

type BookingService struct {
	store  storage.Store
	logger *zap.Logger
}

func NewBookingService(store storage.Store, logger *zap.Logger) *BookingService {
	return &BookingService{
		store:  store,
		logger: logger,
	}
}

// Request creates a pending booking for the slot. The slot itself stays
// available until an admin approves: a pending request does not remove the
// slot from the list, so several riders can request the same window and the
// admin picks one.
func (s *BookingService) Request(ctx context.Context, userID, slotID uuid.UUID) (*model.Booking, error) {
	slot, err := s.store.Slots().GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %s: %w", slotID, apperr.ErrNotFound)
	}

	if !slot.IsAvailable() {
		return nil, fmt.Errorf("slot is %s: %w", slot.Status, apperr.ErrSlotUnavailable)
	}

	// Advisory pre-check for a friendly error; the storage layer's
	// uniqueness guarantee is what holds under concurrency.
	hasActive, err := s.store.Bookings().HasActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check active booking: %w", err)
	}
	if hasActive {
		return nil, fmt.Errorf("request booking: %w", apperr.ErrActiveBookingExists)
	}

	booking := &model.Booking{
		SlotID: slotID,
		UserID: userID,
		Status: model.BookingStatusPending,
	}

	if err := s.store.Bookings().Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("Booking requested",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("slot_id", slotID.String()),
	)

	booking.Slot = slot
	return booking, nil
}

// Decide approves or rejects a pending booking. The booking update, the
// slot transition and the notification insert commit as one transaction, so
// a decision either fully applies or not at all. Re-deciding a decided
// booking fails with ErrInvalidState.
func (s *BookingService) Decide(ctx context.Context, actorID, bookingID uuid.UUID, decision model.BookingStatus, adminNote *string) error {
	if err := requireAdmin(ctx, s.store, actorID); err != nil {
		return err
	}

	if decision != model.BookingStatusApproved && decision != model.BookingStatusRejected {
		return fmt.Errorf("decision must be approved or rejected, got %q: %w",
			decision, apperr.ErrValidation)
	}

	err := s.store.RunInTx(ctx, func(tx storage.Store) error {
		booking, err := tx.Bookings().GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return fmt.Errorf("booking %s: %w", bookingID, apperr.ErrNotFound)
		}

		slot, err := tx.Slots().GetByID(ctx, booking.SlotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return fmt.Errorf("slot %s: %w", booking.SlotID, apperr.ErrNotFound)
		}

		profile, err := tx.Profiles().GetByID(ctx, booking.UserID)
		if err != nil {
			return err
		}
		if profile == nil {
			return fmt.Errorf("booker profile %s: %w", booking.UserID, apperr.ErrNotFound)
		}

		if booking.Status != model.BookingStatusPending {
			return fmt.Errorf("booking is %s, not pending: %w", booking.Status, apperr.ErrInvalidState)
		}

		// Claim the slot before touching the booking, so losing the
		// slot to an earlier approval leaves the booking pending.
		kind := model.NotificationBookingRejected
		if decision == model.BookingStatusApproved {
			claimed, err := tx.Slots().Claim(ctx, booking.SlotID)
			if err != nil {
				return err
			}
			if !claimed {
				return fmt.Errorf("slot already claimed: %w", apperr.ErrSlotUnavailable)
			}
			kind = model.NotificationBookingApproved
		}

		moved, err := tx.Bookings().UpdateStatusFrom(ctx, bookingID,
			model.BookingStatusPending, decision, adminNote)
		if err != nil {
			return err
		}
		if !moved {
			// A concurrent decision slipped in between the read and
			// the update; the transaction rolls the claim back.
			return fmt.Errorf("booking already decided: %w", apperr.ErrInvalidState)
		}

		// Rejecting leaves the slot alone: a pending booking never held
		// the claim, and the slot may be booked by another approval.

		notification := &model.Notification{
			BookingID:      bookingID,
			Kind:           kind,
			RecipientEmail: profile.Email,
			RecipientName:  profile.FullName,
			SlotDate:       slot.Date,
			SlotTime:       slot.StartTime,
			SlotDuration:   slot.Duration,
		}
		if err := tx.Notifications().Create(ctx, notification); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Booking decided",
		zap.String("booking_id", bookingID.String()),
		zap.String("admin_id", actorID.String()),
		zap.String("decision", string(decision)),
	)

	return nil
}

// Cancel withdraws a pending booking. Only the owner may cancel, and only
// while pending; the slot is untouched because a pending request never
// claimed it.
func (s *BookingService) Cancel(ctx context.Context, bookingID, requestingUserID uuid.UUID) error {
	booking, err := s.store.Bookings().GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("booking %s: %w", bookingID, apperr.ErrNotFound)
	}

	if booking.UserID != requestingUserID {
		return fmt.Errorf("cancel booking: %w", apperr.ErrNotOwner)
	}

	moved, err := s.store.Bookings().UpdateStatusFrom(ctx, bookingID,
		model.BookingStatusPending, model.BookingStatusCancelled, nil)
	if err != nil {
		return err
	}
	if !moved {
		return fmt.Errorf("booking is %s, not pending: %w", booking.Status, apperr.ErrInvalidState)
	}

	s.logger.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("user_id", requestingUserID.String()),
	)

	return nil
}

// HasActiveBooking reports whether the user holds a pending or approved
// booking. Advisory: the result can be stale by the time the caller acts.
func (s *BookingService) HasActiveBooking(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.store.Bookings().HasActive(ctx, userID)
}

// ListByUser returns the user's bookings newest-first with slots attached.
func (s *BookingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	return s.store.Bookings().ListByUser(ctx, userID)
}

// Get returns a booking visible to the actor: the owner or an admin.
func (s *BookingService) Get(ctx context.Context, actorID, bookingID uuid.UUID) (*model.Booking, error) {
	booking, err := s.store.Bookings().GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, apperr.ErrNotFound)
	}

	if booking.UserID != actorID {
		if err := requireAdmin(ctx, s.store, actorID); err != nil {
			return nil, fmt.Errorf("booking belongs to another user: %w", apperr.ErrNotOwner)
		}
	}

	slot, err := s.store.Slots().GetByID(ctx, booking.SlotID)
	if err != nil {
		return nil, err
	}
	booking.Slot = slot

	return booking, nil
}
