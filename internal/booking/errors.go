package booking

import "errors"

// Rejection kinds. Every rejection is terminal for the request; the caller
// may resubmit with corrected input or a different slot.
var (
	ErrInvalidInput = errors.New("provider id and date are required")
	ErrNotAProvider = errors.New("bookings can only target a service provider")
	ErrPastDate     = errors.New("past dates are not allowed")
	ErrSlotTaken    = errors.New("slot is not available")

	ErrNotFound = errors.New("appointment not found")
	ErrTooLate  = errors.New("appointments can only be canceled 2 hours in advance")
)
