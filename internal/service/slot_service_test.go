package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderapp/lender/internal/apperr"
	"github.com/lenderapp/lender/internal/model"
)

func TestSlotService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	notes := "Hämta vid Triangeln"
	slot, err := env.slots.Create(ctx, env.adminID, CreateSlotInput{
		Date:      time.Now().AddDate(0, 0, 1),
		StartTime: "08:00",
		Duration:  model.Duration8Hours,
		Notes:     &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, model.SlotStatusAvailable, slot.Status)
	assert.Equal(t, model.Duration8Hours, slot.Duration)
	require.NotNil(t, slot.Notes)
	assert.Equal(t, notes, *slot.Notes)
	assert.NotEqual(t, "", slot.ID.String())
}

func TestSlotService_Create_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateSlotInput
	}{
		{
			name: "missing date",
			input: CreateSlotInput{
				StartTime: "08:00",
				Duration:  model.Duration8Hours,
			},
		},
		{
			name: "date in the past",
			input: CreateSlotInput{
				Date:      time.Now().AddDate(0, 0, -1),
				StartTime: "08:00",
				Duration:  model.Duration8Hours,
			},
		},
		{
			name: "bad start time",
			input: CreateSlotInput{
				Date:      time.Now().AddDate(0, 0, 1),
				StartTime: "kl 8",
				Duration:  model.Duration8Hours,
			},
		},
		{
			name: "unknown duration",
			input: CreateSlotInput{
				Date:      time.Now().AddDate(0, 0, 1),
				StartTime: "08:00",
				Duration:  "8 hours",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.slots.Create(ctx, env.adminID, tc.input)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestSlotService_Create_DuplicateDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := time.Now().AddDate(0, 0, 2)

	_, err := env.slots.Create(ctx, env.adminID, CreateSlotInput{
		Date:      date,
		StartTime: "08:00",
		Duration:  model.Duration8Hours,
	})
	require.NoError(t, err)

	_, err = env.slots.Create(ctx, env.adminID, CreateSlotInput{
		Date:      date,
		StartTime: "14:00",
		Duration:  model.Duration4Hours,
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSlotService_Create_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.slots.Create(context.Background(), env.riderA, CreateSlotInput{
		Date:      time.Now().AddDate(0, 0, 1),
		StartTime: "08:00",
		Duration:  model.Duration8Hours,
	})
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)
}

func TestSlotService_ListAvailable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	later := env.createSlot(t, 5)
	sooner := env.createSlot(t, 2)

	// A booked slot must not show up in the list.
	booked := env.createSlot(t, 3)
	booking, err := env.bookings.Request(ctx, env.riderA, booked.ID)
	require.NoError(t, err)
	require.NoError(t, env.bookings.Decide(ctx, env.adminID, booking.ID, model.BookingStatusApproved, nil))

	slots, err := env.slots.ListAvailable(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, slots, 2)

	// Ordered by date ascending.
	assert.Equal(t, sooner.ID, slots[0].ID)
	assert.Equal(t, later.ID, slots[1].ID)
}

func TestSlotService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	slot := env.createSlot(t, 1)

	require.NoError(t, env.slots.Delete(ctx, env.adminID, slot.ID))

	_, err := env.slots.Get(ctx, slot.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSlotService_Delete_WithActiveBookingFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	slot := env.createSlot(t, 1)

	_, err := env.bookings.Request(ctx, env.riderA, slot.ID)
	require.NoError(t, err)

	err = env.slots.Delete(ctx, env.adminID, slot.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSlotService_MarkCompleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	slot := env.createSlot(t, 1)

	booking, err := env.bookings.Request(ctx, env.riderA, slot.ID)
	require.NoError(t, err)
	require.NoError(t, env.bookings.Decide(ctx, env.adminID, booking.ID, model.BookingStatusApproved, nil))

	require.NoError(t, env.slots.MarkCompleted(ctx, env.adminID, slot.ID))

	completed, err := env.slots.Get(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusCompleted, completed.Status)

	// The approved booking is closed out with the slot.
	done, err := env.bookings.Get(ctx, env.riderA, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCompleted, done.Status)

	// Idempotent: a second call is a no-op with the same end state.
	require.NoError(t, env.slots.MarkCompleted(ctx, env.adminID, slot.ID))
	again, err := env.slots.Get(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusCompleted, again.Status)
}

func TestSlotService_MarkCompleted_AvailableSlotFails(t *testing.T) {
	env := newTestEnv(t)
	slot := env.createSlot(t, 1)

	err := env.slots.MarkCompleted(context.Background(), env.adminID, slot.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestAdminService_Stats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createSlot(t, 1)
	pendingSlot := env.createSlot(t, 2)
	completedSlot := env.createSlot(t, 3)

	_, err := env.bookings.Request(ctx, env.riderA, pendingSlot.ID)
	require.NoError(t, err)

	booking, err := env.bookings.Request(ctx, env.riderB, completedSlot.ID)
	require.NoError(t, err)
	require.NoError(t, env.bookings.Decide(ctx, env.adminID, booking.ID, model.BookingStatusApproved, nil))
	require.NoError(t, env.slots.MarkCompleted(ctx, env.adminID, completedSlot.ID))

	stats, err := env.admin.Stats(ctx, env.adminID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.AvailableSlots) // pendingSlot is still available
	assert.Equal(t, 1, stats.PendingRequests)
	assert.Equal(t, 1, stats.CompletedLoans)
}

func TestAdminService_SlotOverview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	free := env.createSlot(t, 1)
	requested := env.createSlot(t, 2)

	_, err := env.bookings.Request(ctx, env.riderA, requested.ID)
	require.NoError(t, err)

	rows, err := env.admin.SlotOverview(ctx, env.adminID, false)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[string]*model.SlotWithBooking{}
	for _, row := range rows {
		byID[row.Slot.ID.String()] = row
	}

	assert.Nil(t, byID[free.ID.String()].BookingID)

	withBooking := byID[requested.ID.String()]
	require.NotNil(t, withBooking.BookingStatus)
	assert.Equal(t, model.BookingStatusPending, *withBooking.BookingStatus)
	require.NotNil(t, withBooking.BookerEmail)
	assert.Equal(t, "rita@example.com", *withBooking.BookerEmail)

	// Pending filter drops the free slot.
	pending, err := env.admin.SlotOverview(ctx, env.adminID, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, requested.ID, pending[0].Slot.ID)
}

func TestAdminService_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.admin.Stats(ctx, env.riderA)
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)

	_, err = env.admin.SlotOverview(ctx, env.riderA, false)
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)
}
