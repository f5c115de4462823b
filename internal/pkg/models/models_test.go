package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleRider.Valid())
	assert.True(t, RoleDriver.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("passenger").Valid())
	assert.False(t, Role("").Valid())
}

func TestVehicleTypeValid(t *testing.T) {
	assert.True(t, VehicleTypeCar4.Valid())
	assert.True(t, VehicleTypeCar6.Valid())
	assert.True(t, VehicleTypeMotorcycle.Valid())
	assert.True(t, VehicleTypeVan.Valid())
	assert.False(t, VehicleType("truck").Valid())
	assert.False(t, VehicleType("").Valid())
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentMethodCash.Valid())
	assert.True(t, PaymentMethodCard.Valid())
	assert.True(t, PaymentMethodEwallet.Valid())
	assert.False(t, PaymentMethod("barter").Valid())
}

func TestAccountRating(t *testing.T) {
	unrated := &Account{RatingCount: 0, RatingSum: 0}
	assert.Nil(t, unrated.Rating())

	rated := &Account{RatingCount: 4, RatingSum: 18}
	require.NotNil(t, rated.Rating())
	assert.Equal(t, 4.5, *rated.Rating())
}

func TestBookingRedacted(t *testing.T) {
	booking := &Booking{
		ID:              uuid.New(),
		RiderID:         uuid.New(),
		PickupLocation:  "a",
		DropoffLocation: "b",
		VehicleType:     VehicleTypeVan,
		EstimatedKm:     7.5,
		EstimatedFare:   27500,
		Status:          BookingStatusRequested,
		CreatedAt:       time.Now(),
	}

	open := booking.Redacted()
	assert.Equal(t, booking.ID, open.ID)
	assert.Equal(t, booking.VehicleType, open.VehicleType)

	// The wire form must not leak the rider's identity or the status.
	data, err := json.Marshal(open)
	require.NoError(t, err)
	var asMap map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &asMap))
	_, hasRider := asMap["rider_id"]
	assert.False(t, hasRider)
	_, hasStatus := asMap["status"]
	assert.False(t, hasStatus)
}
