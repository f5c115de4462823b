package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/praswib/tumpangan/internal/pkg/constants"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	subject string
	data    []byte
	err     error
}

func (p *capturingPublisher) Publish(subject string, data []byte) error {
	p.subject = subject
	p.data = data
	return p.err
}

func TestPublishBookingAccepted_SubjectAndPayload(t *testing.T) {
	pub := &capturingPublisher{}
	gw := NewTripGW(pub)

	ride := &models.Ride{
		ID:        uuid.New(),
		BookingID: uuid.New(),
		RiderID:   uuid.New(),
		DriverID:  uuid.New(),
		Fare:      27500,
		Status:    models.RideStatusAccepted,
	}

	err := gw.PublishBookingAccepted(context.Background(), ride)
	require.NoError(t, err)
	assert.Equal(t, constants.SubjectBookingAccepted, pub.subject)

	var decoded models.Ride
	require.NoError(t, json.Unmarshal(pub.data, &decoded))
	assert.Equal(t, ride.ID, decoded.ID)
	assert.Equal(t, ride.BookingID, decoded.BookingID)
	assert.Equal(t, ride.Fare, decoded.Fare)
}

func TestPublishPaymentSettled_Subject(t *testing.T) {
	pub := &capturingPublisher{}
	gw := NewTripGW(pub)

	payment := &models.Payment{
		RideID: uuid.New(),
		Amount: 27500,
		Status: models.PaymentStatusSuccess,
	}

	err := gw.PublishPaymentSettled(context.Background(), payment)
	require.NoError(t, err)
	assert.Equal(t, constants.SubjectPaymentSettled, pub.subject)
}

func TestPublish_SubjectsPerTransition(t *testing.T) {
	pub := &capturingPublisher{}
	gw := NewTripGW(pub)
	ride := &models.Ride{ID: uuid.New()}

	require.NoError(t, gw.PublishRideStarted(context.Background(), ride))
	assert.Equal(t, constants.SubjectRideStarted, pub.subject)

	require.NoError(t, gw.PublishRideCompleted(context.Background(), ride))
	assert.Equal(t, constants.SubjectRideCompleted, pub.subject)

	require.NoError(t, gw.PublishRideCancelled(context.Background(), ride))
	assert.Equal(t, constants.SubjectRideCancelled, pub.subject)
}

func TestPublish_SurfacesPublisherError(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("nats down")}
	gw := NewTripGW(pub)

	err := gw.PublishRideStarted(context.Background(), &models.Ride{ID: uuid.New()})
	assert.Error(t, err)
}
