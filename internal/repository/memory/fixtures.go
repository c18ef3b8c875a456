package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lenderapp/lender/internal/model"
)

// Demo account ids are fixed so a demo token can reference them.
var (
	DemoUserID  = uuid.MustParse("0b9f0aab-03b4-4f35-bb54-3f0cc595d1a0")
	DemoAdminID = uuid.MustParse("7de5cc61-9a21-4f1b-8a3d-1c6f7788a9b2")
)

func strPtr(s string) *string { return &s }

// Seed fills the store with the demo dataset: two accounts and a handful of
// upcoming slots.
func Seed(s *Store) {
	s.AddProfile(&model.Profile{
		ID:       DemoUserID,
		Email:    "demo@example.com",
		Phone:    "070-123 45 67",
		FullName: strPtr("Demo Användare"),
		IsAdmin:  false,
	})
	s.AddProfile(&model.Profile{
		ID:       DemoAdminID,
		Email:    "admin@example.com",
		Phone:    "070-987 65 43",
		FullName: strPtr("Admin Användare"),
		IsAdmin:  true,
	})

	today := time.Now()
	slots := []*model.Slot{
		{
			Date:      today.AddDate(0, 0, 1),
			StartTime: "08:00",
			Duration:  model.Duration8Hours,
			Status:    model.SlotStatusAvailable,
		},
		{
			Date:      today.AddDate(0, 0, 3),
			StartTime: "14:00",
			Duration:  model.Duration4Hours,
			Status:    model.SlotStatusAvailable,
			Notes:     strPtr("Hämta vid Triangeln"),
		},
		{
			Date:      today.AddDate(0, 0, 5),
			StartTime: "06:00",
			Duration:  model.Duration24Hours,
			Status:    model.SlotStatusAvailable,
		},
		{
			Date:      today.AddDate(0, 0, 7),
			StartTime: "10:00",
			Duration:  model.Duration2Days,
			Status:    model.SlotStatusAvailable,
			Notes:     strPtr("Helgresa"),
		},
	}
	ctx := context.Background()
	for _, slot := range slots {
		_ = s.Slots().Create(ctx, slot)
	}
}
