package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/repository/memory"
)

type sentEmail struct {
	to      string
	subject string
	html    string
}

// fakeSender records sends and can be told to fail for some recipients.
type fakeSender struct {
	mu     sync.Mutex
	sent   []sentEmail
	failTo map[string]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{failTo: make(map[string]bool)}
}

func (f *fakeSender) Send(ctx context.Context, to, subject, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failTo[to] {
		return errors.New("smtp says no")
	}
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, html: html})
	return nil
}

func strPtr(s string) *string { return &s }

func enqueue(t *testing.T, store *memory.Store, kind model.NotificationKind, email string) *model.Notification {
	t.Helper()

	n := &model.Notification{
		BookingID:      uuid.New(),
		Kind:           kind,
		RecipientEmail: email,
		RecipientName:  strPtr("Rita Resenär"),
		SlotDate:       time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
		SlotTime:       "08:00",
		SlotDuration:   model.Duration8Hours,
	}
	require.NoError(t, store.Notifications().Create(context.Background(), n))
	return n
}

func newDispatcher(store *memory.Store, sender Sender) *Dispatcher {
	retryBase = time.Millisecond
	return NewDispatcher(store.Notifications(), sender, time.Minute, zap.NewNop())
}

func TestDispatcher_DrainSendsAndMarksProcessed(t *testing.T) {
	store := memory.NewStore()
	sender := newFakeSender()
	d := newDispatcher(store, sender)

	enqueue(t, store, model.NotificationBookingApproved, "rita@example.com")
	enqueue(t, store, model.NotificationBookingRejected, "bo@example.com")

	d.drain(context.Background())

	require.Len(t, sender.sent, 2)

	remaining, err := store.Notifications().ListUnprocessed(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDispatcher_FailedSendLeftForRetry(t *testing.T) {
	store := memory.NewStore()
	sender := newFakeSender()
	sender.failTo["broken@example.com"] = true
	d := newDispatcher(store, sender)

	failing := enqueue(t, store, model.NotificationBookingApproved, "broken@example.com")
	enqueue(t, store, model.NotificationBookingApproved, "rita@example.com")

	d.drain(context.Background())

	// The healthy recipient got their email despite the earlier failure.
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "rita@example.com", sender.sent[0].to)

	remaining, err := store.Notifications().ListUnprocessed(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, failing.ID, remaining[0].ID)

	// The failure clears and the next poll delivers it.
	sender.failTo["broken@example.com"] = false
	d.drain(context.Background())

	remaining, err = store.Notifications().ListUnprocessed(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDispatcher_ApprovedEmailContent(t *testing.T) {
	store := memory.NewStore()
	sender := newFakeSender()
	d := newDispatcher(store, sender)

	enqueue(t, store, model.NotificationBookingApproved, "rita@example.com")
	d.drain(context.Background())

	require.Len(t, sender.sent, 1)
	email := sender.sent[0]

	assert.Equal(t, "Din bokning har godkänts! ✓", email.subject)
	assert.Contains(t, email.html, "Hej Rita Resenär!")
	assert.Contains(t, email.html, "måndag 7 september 2026")
	assert.Contains(t, email.html, "08:00")
	assert.Contains(t, email.html, "8 timmar")
}

func TestDispatcher_RejectedEmailContent(t *testing.T) {
	store := memory.NewStore()
	sender := newFakeSender()
	d := newDispatcher(store, sender)

	enqueue(t, store, model.NotificationBookingRejected, "rita@example.com")
	d.drain(context.Background())

	require.Len(t, sender.sent, 1)
	email := sender.sent[0]

	assert.Equal(t, "Uppdatering om din bokning", email.subject)
	assert.Contains(t, email.html, "Tyvärr kunde vi inte godkänna din bokning")
	assert.Contains(t, email.html, "måndag 7 september 2026")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "tisdag 1 september 2026",
		formatDate(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "söndag 1 februari 2026",
		formatDate(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "08:00", formatTime("08:00:00"))
	assert.Equal(t, "08:00", formatTime("08:00"))
}

func TestBody_NoNameFallsBackToPlainGreeting(t *testing.T) {
	n := &model.Notification{
		Kind:         model.NotificationBookingApproved,
		SlotDate:     time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
		SlotTime:     "08:00",
		SlotDuration: model.Duration8Hours,
	}
	assert.Contains(t, Body(n), "<p>Hej!</p>")
}
