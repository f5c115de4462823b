package models

import (
	"time"

	"github.com/google/uuid"
)

// RideStatus represents the status of a ride. Transitions only move
// forward: accepted -> ongoing -> completed, or accepted -> cancelled.
type RideStatus string

const (
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusOngoing   RideStatus = "ongoing"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// Ride represents the accepted, in-progress or finished trip derived
// from a booking. Created exactly once, when the booking is accepted.
type Ride struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	BookingID   uuid.UUID  `json:"booking_id" db:"booking_id"`
	RiderID     uuid.UUID  `json:"rider_id" db:"rider_id"`
	DriverID    uuid.UUID  `json:"driver_id" db:"driver_id"`
	VehicleID   uuid.UUID  `json:"vehicle_id" db:"vehicle_id"`
	DistanceKm  float64    `json:"distance_km" db:"distance_km"`
	Fare        float64    `json:"fare" db:"fare"`
	Status      RideStatus `json:"status" db:"status"`
	AcceptedAt  time.Time  `json:"accepted_at" db:"accepted_at"`
	StartedAt   *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`
	DurationSec *int       `json:"duration_sec,omitempty" db:"duration_sec"`
}

// RideDetail is the enriched ride view returned to the ride's rider,
// driver, or an admin.
type RideDetail struct {
	Ride    Ride              `json:"ride"`
	Rider   AccountProjection `json:"rider"`
	Driver  AccountProjection `json:"driver"`
	Vehicle Vehicle           `json:"vehicle"`
	Payment *Payment          `json:"payment,omitempty"`
}
