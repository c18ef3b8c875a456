package model

import "github.com/google/uuid"

// SlotWithBooking is a row of the admin overview: a slot joined with its
// active booking (if any) and the booker's contact details.
type SlotWithBooking struct {
	Slot

	BookingID           *uuid.UUID     `json:"booking_id"`
	BookedBy            *uuid.UUID     `json:"booked_by"`
	BookingStatus       *BookingStatus `json:"booking_status"`
	BookerEmail         *string        `json:"booker_email"`
	BookerPhone         *string        `json:"booker_phone"`
	BookerName          *string        `json:"booker_name"`
	BookerPreviousLoans int            `json:"booker_previous_loans"`
}

// AdminStats are the dashboard counters.
type AdminStats struct {
	AvailableSlots  int `json:"available_slots"`
	PendingRequests int `json:"pending_requests"`
	CompletedLoans  int `json:"completed_loans"`
}
