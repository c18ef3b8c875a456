package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderapp/lender/internal/apperr"
	"github.com/lenderapp/lender/internal/model"
)

func addSlot(t *testing.T, s *Store, daysAhead int) *model.Slot {
	t.Helper()

	slot := &model.Slot{
		Date:      time.Now().AddDate(0, 0, daysAhead),
		StartTime: "08:00",
		Duration:  model.Duration8Hours,
		Status:    model.SlotStatusAvailable,
	}
	require.NoError(t, s.Slots().Create(context.Background(), slot))
	return slot
}

func addBooking(t *testing.T, s *Store, slotID, userID uuid.UUID) *model.Booking {
	t.Helper()

	booking := &model.Booking{
		SlotID: slotID,
		UserID: userID,
		Status: model.BookingStatusPending,
	}
	require.NoError(t, s.Bookings().Create(context.Background(), booking))
	return booking
}

func TestBookingRepo_Create_EnforcesOneActivePerUser(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	userID := uuid.New()

	first := addSlot(t, s, 1)
	second := addSlot(t, s, 2)

	addBooking(t, s, first.ID, userID)

	err := s.Bookings().Create(ctx, &model.Booking{
		SlotID: second.ID,
		UserID: userID,
		Status: model.BookingStatusPending,
	})
	assert.ErrorIs(t, err, apperr.ErrActiveBookingExists)
}

func TestSlotRepo_Claim_OnlyWhenAvailable(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	slot := addSlot(t, s, 1)

	claimed, err := s.Slots().Claim(ctx, slot.ID)
	require.NoError(t, err)
	assert.True(t, claimed)

	// A second claim finds the slot already booked.
	claimed, err = s.Slots().Claim(ctx, slot.ID)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestSlotRepo_ListWithBookings_PreviousLoans(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	userID := uuid.New()

	name := "Rita Resenär"
	s.AddProfile(&model.Profile{
		ID:       userID,
		Email:    "rita@example.com",
		Phone:    "070-123 45 67",
		FullName: &name,
	})

	// One finished loan in the history.
	past := addSlot(t, s, 1)
	finished := addBooking(t, s, past.ID, userID)
	_, err := s.Bookings().UpdateStatusFrom(ctx, finished.ID,
		model.BookingStatusPending, model.BookingStatusCompleted, nil)
	require.NoError(t, err)

	current := addSlot(t, s, 2)
	addBooking(t, s, current.ID, userID)

	rows, err := s.Slots().ListWithBookings(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var withBooking *model.SlotWithBooking
	for _, row := range rows {
		if row.Slot.ID == current.ID {
			withBooking = row
		}
	}
	require.NotNil(t, withBooking)
	require.NotNil(t, withBooking.BookerEmail)
	assert.Equal(t, "rita@example.com", *withBooking.BookerEmail)
	assert.Equal(t, name, *withBooking.BookerName)
	assert.Equal(t, 1, withBooking.BookerPreviousLoans)
}

func TestNotificationRepo_OldestFirstWithLimit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		n := &model.Notification{
			BookingID:      uuid.New(),
			Kind:           model.NotificationBookingApproved,
			RecipientEmail: "rita@example.com",
			SlotDate:       time.Now(),
			SlotTime:       "08:00",
			SlotDuration:   model.Duration8Hours,
		}
		require.NoError(t, s.Notifications().Create(ctx, n))
		ids = append(ids, n.ID)
		time.Sleep(time.Millisecond)
	}

	batch, err := s.Notifications().ListUnprocessed(ctx, 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, ids[0], batch[0].ID)
	assert.Equal(t, ids[1], batch[1].ID)

	require.NoError(t, s.Notifications().MarkProcessed(ctx, ids[0]))

	batch, err = s.Notifications().ListUnprocessed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, ids[1], batch[0].ID)
}

func TestSeed(t *testing.T) {
	s := NewStore()
	Seed(s)

	slots, err := s.Slots().ListAvailable(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Len(t, slots, 4)

	admin, err := s.Profiles().GetByID(context.Background(), DemoAdminID)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin)
}
