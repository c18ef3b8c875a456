package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lenderapp/lender/internal/apperr"
	"github.com/lenderapp/lender/internal/storage"
)

// dateOnly strips the time-of-day so calendar dates compare cleanly.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// requireAdmin loads the actor's profile and checks the admin flag, the sole
// authorization gate for admin operations.
func requireAdmin(ctx context.Context, store storage.Store, actorID uuid.UUID) error {
	profile, err := store.Profiles().GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("get actor profile: %w", err)
	}

	if profile == nil || !profile.IsAdmin {
		return fmt.Errorf("admin required: %w", apperr.ErrNotAuthorized)
	}

	return nil
}
