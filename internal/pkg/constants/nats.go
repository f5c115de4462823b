package constants

// NATS subjects for trip lifecycle events
const (
	SubjectBookingAccepted = "booking.accepted"
	SubjectRideStarted     = "ride.started"
	SubjectRideCompleted   = "ride.completed"
	SubjectRideCancelled   = "ride.cancelled"
	SubjectPaymentSettled  = "payment.settled"
)
