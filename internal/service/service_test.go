package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/repository/memory"
)

// testEnv wires the services against a fresh in-memory store with one admin
// and two rider accounts.
type testEnv struct {
	store    *memory.Store
	slots    *SlotService
	bookings *BookingService
	admin    *AdminService

	adminID uuid.UUID
	riderA  uuid.UUID
	riderB  uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	logger := zap.NewNop()

	env := &testEnv{
		store:    store,
		slots:    NewSlotService(store, logger),
		bookings: NewBookingService(store, logger),
		admin:    NewAdminService(store, logger),
		adminID:  uuid.New(),
		riderA:   uuid.New(),
		riderB:   uuid.New(),
	}

	name := "Admin Andersson"
	store.AddProfile(&model.Profile{
		ID:       env.adminID,
		Email:    "admin@example.com",
		Phone:    "070-987 65 43",
		FullName: &name,
		IsAdmin:  true,
	})

	riderName := "Rita Resenär"
	store.AddProfile(&model.Profile{
		ID:       env.riderA,
		Email:    "rita@example.com",
		Phone:    "070-123 45 67",
		FullName: &riderName,
	})
	store.AddProfile(&model.Profile{
		ID:    env.riderB,
		Email: "bo@example.com",
		Phone: "070-111 22 33",
	})

	return env
}

// createSlot publishes an available slot n days from now.
func (env *testEnv) createSlot(t *testing.T, daysAhead int) *model.Slot {
	t.Helper()

	slot, err := env.slots.Create(context.Background(), env.adminID, CreateSlotInput{
		Date:      time.Now().AddDate(0, 0, daysAhead),
		StartTime: "08:00",
		Duration:  model.Duration8Hours,
	})
	require.NoError(t, err)
	return slot
}

// unprocessedNotifications reads the queue directly from the store.
func (env *testEnv) unprocessedNotifications(t *testing.T) []*model.Notification {
	t.Helper()

	notifications, err := env.store.Notifications().ListUnprocessed(context.Background(), 100)
	require.NoError(t, err)
	return notifications
}
