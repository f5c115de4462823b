package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
)

// PaymentMethod represents how a rider settles a ride
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodEwallet PaymentMethod = "ewallet"
)

// Valid reports whether m is one of the supported payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodEwallet:
		return true
	}
	return false
}

// Payment represents the single payment record attached to a ride.
// It is created pending alongside the ride and settled once by the rider.
type Payment struct {
	RideID         uuid.UUID     `json:"ride_id" db:"ride_id"`
	RiderID        uuid.UUID     `json:"rider_id" db:"rider_id"`
	DriverID       uuid.UUID     `json:"driver_id" db:"driver_id"`
	Amount         float64       `json:"amount" db:"amount"`
	Method         PaymentMethod `json:"payment_method,omitempty" db:"payment_method"`
	TransactionRef string        `json:"transaction_ref,omitempty" db:"transaction_ref"`
	Status         PaymentStatus `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	PaidAt         *time.Time    `json:"paid_at,omitempty" db:"paid_at"`
}

// PaymentRequest is the rider-facing payload for settling a ride
type PaymentRequest struct {
	Method         PaymentMethod `json:"payment_method"`
	TransactionRef string        `json:"transaction_ref"`
}
