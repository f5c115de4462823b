package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "requested"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// VehicleType represents the kind of vehicle a rider may request
type VehicleType string

const (
	VehicleTypeCar4       VehicleType = "4 people car"
	VehicleTypeCar6       VehicleType = "6 people car"
	VehicleTypeMotorcycle VehicleType = "motorcycle"
	VehicleTypeVan        VehicleType = "van"
)

// Valid reports whether t is one of the supported vehicle types.
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeCar4, VehicleTypeCar6, VehicleTypeMotorcycle, VehicleTypeVan:
		return true
	}
	return false
}

// Booking represents a rider's open trip request before a driver is
// assigned. Once accepted or cancelled a booking is history and is never
// edited or deleted.
type Booking struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	RiderID         uuid.UUID     `json:"rider_id" db:"rider_id"`
	PickupLocation  string        `json:"pickup_location" db:"pickup_location"`
	DropoffLocation string        `json:"dropoff_location" db:"dropoff_location"`
	VehicleType     VehicleType   `json:"vehicle_type" db:"vehicle_type"`
	EstimatedKm     float64       `json:"estimated_km" db:"estimated_km"`
	EstimatedFare   float64       `json:"estimated_fare" db:"estimated_fare"`
	Status          BookingStatus `json:"status" db:"status"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty" db:"cancelled_at"`
}

// BookingRequest is the rider-facing payload for creating a booking
type BookingRequest struct {
	PickupLocation  string      `json:"pickup_location"`
	DropoffLocation string      `json:"dropoff_location"`
	VehicleType     VehicleType `json:"vehicle_type"`
}

// BookingPatch carries the fields a rider may edit while a booking is
// still open. Nil fields are left untouched.
type BookingPatch struct {
	PickupLocation  *string      `json:"pickup_location,omitempty"`
	DropoffLocation *string      `json:"dropoff_location,omitempty"`
	VehicleType     *VehicleType `json:"vehicle_type,omitempty"`
}

// OpenBooking is the driver-facing projection of a requested booking.
// Rider identity is redacted.
type OpenBooking struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	PickupLocation  string      `json:"pickup_location" db:"pickup_location"`
	DropoffLocation string      `json:"dropoff_location" db:"dropoff_location"`
	VehicleType     VehicleType `json:"vehicle_type" db:"vehicle_type"`
	EstimatedKm     float64     `json:"estimated_km" db:"estimated_km"`
	EstimatedFare   float64     `json:"estimated_fare" db:"estimated_fare"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}

// Redacted converts a booking to its driver-facing projection.
func (b *Booking) Redacted() OpenBooking {
	return OpenBooking{
		ID:              b.ID,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		VehicleType:     b.VehicleType,
		EstimatedKm:     b.EstimatedKm,
		EstimatedFare:   b.EstimatedFare,
		CreatedAt:       b.CreatedAt,
	}
}
