package trips

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/praswib/tumpangan/internal/pkg/models"
)

// Sentinel errors returned by the data access layer. The usecase maps
// them onto the public error taxonomy.
var (
	// ErrNotFound covers a missing row and a conditional write whose
	// guard did not hold. The two are indistinguishable on purpose.
	ErrNotFound = errors.New("record not found")
	// ErrConflict marks a conditional insert that lost to an earlier one
	ErrConflict = errors.New("record already exists")
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/praswib/tumpangan/services/trips BookingRepo,RideRepo,PaymentRepo,RatingRepo,AccountRepo,VehicleRepo

// BookingRepo defines data access for the booking ledger. Every status
// transition is a single conditional write: the expected current status
// is part of the WHERE clause and zero affected rows means the guard no
// longer held.
type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	UpdateRequested(ctx context.Context, id, riderID uuid.UUID, patch models.BookingPatch) (*models.Booking, error)
	CancelRequested(ctx context.Context, id, riderID uuid.UUID, at time.Time) (*models.Booking, error)
	AcceptRequested(ctx context.Context, id uuid.UUID) error
	ListOpen(ctx context.Context) ([]models.OpenBooking, error)
}

// RideRepo defines data access for the ride ledger
type RideRepo interface {
	CreateRide(ctx context.Context, ride *models.Ride) error
	GetRide(ctx context.Context, id uuid.UUID) (*models.Ride, error)
	StartRide(ctx context.Context, id, driverID uuid.UUID, at time.Time) (*models.Ride, error)
	CompleteRide(ctx context.Context, id, driverID uuid.UUID, at time.Time) (*models.Ride, error)
	CancelRide(ctx context.Context, id, callerID uuid.UUID, at time.Time) (*models.Ride, error)
	ForceCancelRide(ctx context.Context, id uuid.UUID, at time.Time) (*models.Ride, error)
}

// PaymentRepo defines data access for the payment ledger
type PaymentRepo interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByRideID(ctx context.Context, rideID uuid.UUID) (*models.Payment, error)
	SettlePayment(ctx context.Context, rideID, riderID uuid.UUID, method models.PaymentMethod, ref string, at time.Time) (*models.Payment, error)
}

// RatingRepo defines data access for the rating ledger
type RatingRepo interface {
	CreateRating(ctx context.Context, rating *models.Rating) error
}

// AccountRepo is the read-side contract against the account directory,
// plus the single aggregate write the rating flow performs. Account
// lifecycle (registration, login, suspension) lives elsewhere.
type AccountRepo interface {
	GetAccount(ctx context.Context, id uuid.UUID, role models.Role) (*models.Account, error)
	IncrementDriverRating(ctx context.Context, driverID uuid.UUID, rating int) error
}

// VehicleRepo is the read-side contract against the vehicle registry
type VehicleRepo interface {
	GetActiveVehicle(ctx context.Context, driverID uuid.UUID) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}
