// Package apperr defines the error kinds surfaced by the booking core.
// Services wrap these sentinels with context; callers branch with errors.Is.
package apperr

import "errors"

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a violated uniqueness or referential expectation,
	// e.g. a second slot on the same date or deleting a slot still in use.
	ErrConflict = errors.New("conflict")

	// ErrSlotUnavailable marks a booking attempt against a slot that is not
	// (or no longer) available.
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrActiveBookingExists marks a booking attempt by a user who already
	// holds a pending or approved booking.
	ErrActiveBookingExists = errors.New("user already has an active booking")

	// ErrInvalidState marks an operation attempted from a state that does
	// not permit it, e.g. re-deciding a decided booking.
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrNotOwner marks a cancellation attempted by someone other than the
	// booking's owner.
	ErrNotOwner = errors.New("not the owner of this booking")

	// ErrNotAuthorized marks an admin-only operation attempted by a
	// non-admin user.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrNotFound marks a lookup of an entity that does not exist.
	ErrNotFound = errors.New("not found")
)
