package model

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusCompleted SlotStatus = "completed"
	SlotStatusCancelled SlotStatus = "cancelled"
)

// SlotDuration is the loan length offered with a slot. The values are the
// exact strings stored in the database and shown in emails.
type SlotDuration string

const (
	Duration4Hours  SlotDuration = "4 timmar"
	Duration8Hours  SlotDuration = "8 timmar"
	Duration12Hours SlotDuration = "12 timmar"
	Duration24Hours SlotDuration = "24 timmar"
	Duration2Days   SlotDuration = "2 dagar"
	Duration1Week   SlotDuration = "1 vecka"
)

// Durations lists every valid loan length, in menu order.
var Durations = []SlotDuration{
	Duration4Hours,
	Duration8Hours,
	Duration12Hours,
	Duration24Hours,
	Duration2Days,
	Duration1Week,
}

// IsValid checks that d is one of the known durations.
func (d SlotDuration) IsValid() bool {
	for _, known := range Durations {
		if d == known {
			return true
		}
	}
	return false
}

// Slot is a time window during which the pass is offered for lending.
type Slot struct {
	ID        uuid.UUID    `json:"id"`
	Date      time.Time    `json:"date"`       // calendar date of the loan
	StartTime string       `json:"start_time"` // "HH:MM" or "HH:MM:SS"
	Duration  SlotDuration `json:"duration"`
	Status    SlotStatus   `json:"status"`
	Notes     *string      `json:"notes"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// IsAvailable checks if the slot can still be requested
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// IsTerminal checks if the slot can never be booked again
func (s *Slot) IsTerminal() bool {
	return s.Status == SlotStatusCompleted || s.Status == SlotStatusCancelled
}
