package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the kind of account attached to a request. The set is
// closed; role dispatch happens on these constants, never on raw strings
// from the wire.
type Role string

const (
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleRider, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// Account represents an identity in the account directory. The trips
// service only ever reads accounts; registration, login and suspension
// live elsewhere.
type Account struct {
	ID          uuid.UUID `json:"id" db:"id"`
	FullName    string    `json:"fullname" db:"fullname"`
	MSISDN      string    `json:"msisdn" db:"msisdn"`
	Role        Role      `json:"role" db:"role"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	RatingCount int       `json:"rating_count" db:"rating_count"`
	RatingSum   int       `json:"rating_sum" db:"rating_sum"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Rating returns the driver's average rating, or nil when unrated.
func (a *Account) Rating() *float64 {
	if a.RatingCount == 0 {
		return nil
	}
	avg := float64(a.RatingSum) / float64(a.RatingCount)
	return &avg
}

// Vehicle represents a driver's registered vehicle
type Vehicle struct {
	ID       uuid.UUID   `json:"id" db:"id"`
	DriverID uuid.UUID   `json:"driver_id" db:"driver_id"`
	Type     VehicleType `json:"vehicle_type" db:"vehicle_type"`
	Plate    string      `json:"plate" db:"plate"`
	IsActive bool        `json:"is_active" db:"is_active"`
}

// AccountProjection is the redacted account view embedded in ride details
type AccountProjection struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullname"`
	MSISDN   string    `json:"msisdn"`
	Rating   *float64  `json:"rating,omitempty"`
}
