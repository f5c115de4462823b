package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating represents a rider's rating of a completed ride. At most one
// rating exists per (ride, rider); inserting one also bumps the driver's
// aggregate on the account directory.
type Rating struct {
	RideID    uuid.UUID `json:"ride_id" db:"ride_id"`
	RiderID   uuid.UUID `json:"rider_id" db:"rider_id"`
	DriverID  uuid.UUID `json:"driver_id" db:"driver_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RatingRequest is the rider-facing payload for rating a ride
type RatingRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
