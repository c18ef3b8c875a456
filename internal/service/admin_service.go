package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/storage"
)

// AdminService serves the admin dashboard read models.
type AdminService struct {
	store  storage.Store
	logger *zap.Logger
}

func NewAdminService(store storage.Store, logger *zap.Logger) *AdminService {
	return &AdminService{
		store:  store,
		logger: logger,
	}
}

// SlotOverview returns every slot joined with its active booking and booker
// contact details. With onlyPending set, only slots whose booking awaits a
// decision are returned (the request inbox).
func (s *AdminService) SlotOverview(ctx context.Context, actorID uuid.UUID, onlyPending bool) ([]*model.SlotWithBooking, error) {
	if err := requireAdmin(ctx, s.store, actorID); err != nil {
		return nil, err
	}

	rows, err := s.store.Slots().ListWithBookings(ctx)
	if err != nil {
		return nil, err
	}

	if !onlyPending {
		return rows, nil
	}

	pending := rows[:0]
	for _, row := range rows {
		if row.BookingStatus != nil && *row.BookingStatus == model.BookingStatusPending {
			pending = append(pending, row)
		}
	}
	return pending, nil
}

// Stats returns the dashboard counters: upcoming available slots, pending
// requests and completed loans.
func (s *AdminService) Stats(ctx context.Context, actorID uuid.UUID) (*model.AdminStats, error) {
	if err := requireAdmin(ctx, s.store, actorID); err != nil {
		return nil, err
	}

	available, err := s.store.Slots().CountAvailable(ctx, dateOnly(time.Now()))
	if err != nil {
		return nil, err
	}

	pending, err := s.store.Bookings().CountByStatus(ctx, model.BookingStatusPending)
	if err != nil {
		return nil, err
	}

	completed, err := s.store.Bookings().CountByStatus(ctx, model.BookingStatusCompleted)
	if err != nil {
		return nil, err
	}

	return &model.AdminStats{
		AvailableSlots:  available,
		PendingRequests: pending,
		CompletedLoans:  completed,
	}, nil
}
