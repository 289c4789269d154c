package errors

import "errors"

var (
	// ErrDateConflict means another booking already holds (state, date).
	ErrDateConflict = errors.New("date already booked for state")

	// ErrChurchConflict means the church already holds a booking in the state.
	ErrChurchConflict = errors.New("church already booked state")

	ErrInvalidState = errors.New("state is required")
)

// Client-facing messages. Existing front ends match on these strings.
const (
	MsgDateConflict       = "That date is already booked for this state."
	MsgChurchConflict     = "This church has already booked this state."
	MsgSaveFailed         = "Failed to save booking"
	MsgFetchFailed        = "Failed to fetch bookings"
	MsgFetchDatesFailed   = "Failed to fetch booked dates"
	MsgValidationFailed   = "Booking validation failed"
	MsgBookingSaved       = "Booking saved successfully!"
	MsgInvalidRequestBody = "Invalid request body"
)
