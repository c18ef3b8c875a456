// Package memory is the in-memory implementation of the storage interfaces,
// used by tests and demo mode. It replaces the mutable module-level demo
// dataset of earlier iterations with a store injected like any other.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lenderapp/lender/internal/apperr"
	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/storage"
)

type Store struct {
	mu sync.RWMutex
	// txMu serializes RunInTx blocks. There is no rollback: the memory
	// store trades atomicity for simplicity, which is fine for fixtures.
	txMu sync.Mutex

	slots         map[uuid.UUID]*model.Slot
	bookings      map[uuid.UUID]*model.Booking
	notifications map[uuid.UUID]*model.Notification
	profiles      map[uuid.UUID]*model.Profile
}

func NewStore() *Store {
	return &Store{
		slots:         make(map[uuid.UUID]*model.Slot),
		bookings:      make(map[uuid.UUID]*model.Booking),
		notifications: make(map[uuid.UUID]*model.Notification),
		profiles:      make(map[uuid.UUID]*model.Profile),
	}
}

func (s *Store) Slots() storage.SlotRepo                 { return (*slotRepo)(s) }
func (s *Store) Bookings() storage.BookingRepo           { return (*bookingRepo)(s) }
func (s *Store) Notifications() storage.NotificationRepo { return (*notificationRepo)(s) }
func (s *Store) Profiles() storage.ProfileRepo           { return (*profileRepo)(s) }

func (s *Store) RunInTx(ctx context.Context, fn func(storage.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

// AddProfile registers a profile, standing in for the identity provider.
func (s *Store) AddProfile(p *model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.profiles[p.ID] = &cp
}

// dateOnly strips the time-of-day so calendar dates compare cleanly.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type slotRepo Store

func (r *slotRepo) Create(ctx context.Context, slot *model.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	slot.ID = uuid.New()
	slot.Date = dateOnly(slot.Date)
	slot.CreatedAt = now
	slot.UpdatedAt = now

	cp := *slot
	r.slots[slot.ID] = &cp
	return nil
}

func (r *slotRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *slot
	return &cp, nil
}

func (r *slotRepo) ListAvailable(ctx context.Context, from time.Time) ([]*model.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from = dateOnly(from)
	var slots []*model.Slot
	for _, slot := range r.slots {
		if slot.Status == model.SlotStatusAvailable && !slot.Date.Before(from) {
			cp := *slot
			slots = append(slots, &cp)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Date.Before(slots[j].Date) })
	return slots, nil
}

func (r *slotRepo) FindActiveByDate(ctx context.Context, date time.Time) (*model.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	date = dateOnly(date)
	for _, slot := range r.slots {
		if slot.Date.Equal(date) &&
			(slot.Status == model.SlotStatusAvailable || slot.Status == model.SlotStatusBooked) {
			cp := *slot
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *slotRepo) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok || slot.Status != model.SlotStatusAvailable {
		return false, nil
	}
	slot.Status = model.SlotStatusBooked
	slot.UpdatedAt = time.Now()
	return true, nil
}

func (r *slotRepo) Complete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok || slot.Status != model.SlotStatusBooked {
		return false, nil
	}
	slot.Status = model.SlotStatusCompleted
	slot.UpdatedAt = time.Now()
	return true, nil
}

func (r *slotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[id]; !ok {
		return fmt.Errorf("delete slot: slot not found")
	}
	delete(r.slots, id)
	return nil
}

func (r *slotRepo) ListWithBookings(ctx context.Context) ([]*model.SlotWithBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	completedByUser := make(map[uuid.UUID]int)
	for _, b := range r.bookings {
		if b.Status == model.BookingStatusCompleted {
			completedByUser[b.UserID]++
		}
	}

	var result []*model.SlotWithBooking
	for _, slot := range r.slots {
		row := &model.SlotWithBooking{Slot: *slot}
		for _, b := range r.bookings {
			if b.SlotID != slot.ID || !b.IsActive() {
				continue
			}
			bookingID, userID, status := b.ID, b.UserID, b.Status
			row.BookingID = &bookingID
			row.BookedBy = &userID
			row.BookingStatus = &status
			row.BookerPreviousLoans = completedByUser[b.UserID]
			if profile, ok := r.profiles[b.UserID]; ok {
				email, phone := profile.Email, profile.Phone
				row.BookerEmail = &email
				row.BookerPhone = &phone
				row.BookerName = profile.FullName
			}
			break
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *slotRepo) CountAvailable(ctx context.Context, from time.Time) (int, error) {
	slots, err := r.ListAvailable(ctx, from)
	if err != nil {
		return 0, err
	}
	return len(slots), nil
}

type bookingRepo Store

func (r *bookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Same guarantee as the partial unique index in postgres.
	for _, b := range r.bookings {
		if b.UserID == booking.UserID && b.IsActive() {
			return fmt.Errorf("create booking: %w", apperr.ErrActiveBookingExists)
		}
	}

	now := time.Now()
	booking.ID = uuid.New()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	cp := *booking
	cp.Slot = nil
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *booking
	return &cp, nil
}

func (r *bookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []*model.Booking
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		cp := *b
		if slot, ok := r.slots[b.SlotID]; ok {
			slotCp := *slot
			cp.Slot = &slotCp
		}
		bookings = append(bookings, &cp)
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *bookingRepo) HasActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.UserID == userID && b.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepo) HasActiveForSlot(ctx context.Context, slotID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.SlotID == slotID && b.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepo) FindActiveBySlot(ctx context.Context, slotID uuid.UUID) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.SlotID == slotID && b.IsActive() {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *bookingRepo) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to model.BookingStatus, adminNotes *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}
	booking.Status = to
	if adminNotes != nil {
		booking.AdminNotes = adminNotes
	}
	booking.UpdatedAt = time.Now()
	return true, nil
}

func (r *bookingRepo) CountByStatus(ctx context.Context, status model.BookingStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, b := range r.bookings {
		if b.Status == status {
			count++
		}
	}
	return count, nil
}

type notificationRepo Store

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.ID = uuid.New()
	n.Processed = false
	n.CreatedAt = time.Now()

	cp := *n
	r.notifications[n.ID] = &cp
	return nil
}

func (r *notificationRepo) ListUnprocessed(ctx context.Context, limit int) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var pending []*model.Notification
	for _, n := range r.notifications {
		if !n.Processed {
			cp := *n
			pending = append(pending, &cp)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r *notificationRepo) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok {
		return fmt.Errorf("mark notification processed: notification not found")
	}
	n.Processed = true
	return nil
}

type profileRepo Store

func (r *profileRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *profile
	return &cp, nil
}
