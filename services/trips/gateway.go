package trips

import (
	"context"

	"github.com/praswib/tumpangan/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/praswib/tumpangan/services/trips TripGW

// TripGW publishes lifecycle events for downstream consumers (dispatch,
// notifications, analytics). Publishing is best effort: a failed publish
// is logged, never rolled back into the lifecycle.
type TripGW interface {
	PublishBookingAccepted(ctx context.Context, ride *models.Ride) error
	PublishRideStarted(ctx context.Context, ride *models.Ride) error
	PublishRideCompleted(ctx context.Context, ride *models.Ride) error
	PublishRideCancelled(ctx context.Context, ride *models.Ride) error
	PublishPaymentSettled(ctx context.Context, payment *models.Payment) error
}
