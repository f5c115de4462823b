package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/praswib/tumpangan/internal/pkg/constants"
	"github.com/praswib/tumpangan/internal/pkg/models"
)

// NATSPublisher interface for publishing messages
type NATSPublisher interface {
	Publish(subject string, data []byte) error
}

// TripGW publishes trip lifecycle events over NATS
type TripGW struct {
	publisher NATSPublisher
}

// NewTripGW creates a new trip gateway
func NewTripGW(publisher NATSPublisher) *TripGW {
	return &TripGW{
		publisher: publisher,
	}
}

func (g *TripGW) publishJSON(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", subject, err)
	}
	return g.publisher.Publish(subject, data)
}

// PublishBookingAccepted publishes the ride created by winning an accept race
func (g *TripGW) PublishBookingAccepted(ctx context.Context, ride *models.Ride) error {
	return g.publishJSON(constants.SubjectBookingAccepted, ride)
}

// PublishRideStarted publishes a ride started event
func (g *TripGW) PublishRideStarted(ctx context.Context, ride *models.Ride) error {
	return g.publishJSON(constants.SubjectRideStarted, ride)
}

// PublishRideCompleted publishes a ride completed event
func (g *TripGW) PublishRideCompleted(ctx context.Context, ride *models.Ride) error {
	return g.publishJSON(constants.SubjectRideCompleted, ride)
}

// PublishRideCancelled publishes a ride cancelled event
func (g *TripGW) PublishRideCancelled(ctx context.Context, ride *models.Ride) error {
	return g.publishJSON(constants.SubjectRideCancelled, ride)
}

// PublishPaymentSettled publishes a payment settled event
func (g *TripGW) PublishPaymentSettled(ctx context.Context, payment *models.Payment) error {
	return g.publishJSON(constants.SubjectPaymentSettled, payment)
}
