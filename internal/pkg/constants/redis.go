package constants

import "time"

// Redis keys and TTLs
const (
	// KeyOpenBookings caches the driver-facing open bookings feed
	KeyOpenBookings = "bookings:open"

	// OpenBookingsTTL keeps the feed fresh enough that an accepted
	// booking disappears quickly even without explicit invalidation
	OpenBookingsTTL = 10 * time.Second
)
