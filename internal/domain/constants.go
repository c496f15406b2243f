package domain

// Booking outcomes used for metrics and logs
const (
	OutcomeBooked   = "booked"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Business messages returned to API clients
const (
	MsgTimeSlotConflict = "Time slot conflict"
	MsgBookingSuccess   = "Booking successful!"
)

