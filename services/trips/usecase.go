package trips

import (
	"context"

	"github.com/google/uuid"
	"github.com/praswib/tumpangan/internal/pkg/models"
)

// PricingFunc estimates a fare from an estimated trip distance. The
// default implementation is a flat base fare plus a per-kilometer rate;
// a real quoting engine can be injected without touching the lifecycle.
type PricingFunc func(distanceKm float64) float64

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/praswib/tumpangan/services/trips TripUC

// TripUC defines the trip lifecycle business logic. Every operation
// resolves its own failures into the apperrors taxonomy; nothing else
// escapes.
type TripUC interface {
	CreateBooking(ctx context.Context, riderID uuid.UUID, req models.BookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID, riderID uuid.UUID) (*models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID, riderID uuid.UUID, patch models.BookingPatch) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, riderID uuid.UUID) (*models.Booking, error)
	ListOpenBookings(ctx context.Context) ([]models.OpenBooking, error)
	AcceptBooking(ctx context.Context, bookingID, driverID uuid.UUID) (*models.Ride, error)

	StartRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error)
	CompleteRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error)
	CancelRide(ctx context.Context, rideID, callerID uuid.UUID) (*models.Ride, error)
	ForceCancelRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error)
	GetRide(ctx context.Context, rideID, callerID uuid.UUID, isAdmin bool) (*models.RideDetail, error)

	PayForRide(ctx context.Context, rideID, riderID uuid.UUID, req models.PaymentRequest) (*models.Payment, error)
	RateRide(ctx context.Context, rideID, riderID uuid.UUID, req models.RatingRequest) (*models.Rating, error)
}
