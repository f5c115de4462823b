package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/praswib/tumpangan/internal/pkg/apperrors"
	"github.com/praswib/tumpangan/internal/pkg/logger"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/services/trips"
)

// CreateBooking validates a rider's trip request and inserts it with
// status requested. The distance estimate is a stub until a routing
// engine exists; the fare comes from the injected pricing function.
func (uc *tripUC) CreateBooking(ctx context.Context, riderID uuid.UUID, req models.BookingRequest) (*models.Booking, error) {
	if strings.TrimSpace(req.PickupLocation) == "" {
		return nil, apperrors.Validation("pickup location is required")
	}
	if strings.TrimSpace(req.DropoffLocation) == "" {
		return nil, apperrors.Validation("dropoff location is required")
	}
	if !req.VehicleType.Valid() {
		return nil, apperrors.Validation("unknown vehicle type")
	}

	estimatedKm := uc.cfg.Pricing.DefaultDistanceKm

	booking := &models.Booking{
		ID:              uuid.New(),
		RiderID:         riderID,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		VehicleType:     req.VehicleType,
		EstimatedKm:     estimatedKm,
		EstimatedFare:   uc.price(estimatedKm),
		Status:          models.BookingStatusRequested,
		CreatedAt:       time.Now(),
	}

	if err := uc.bookings.CreateBooking(ctx, booking); err != nil {
		logger.Error("Failed to create booking",
			logger.String("rider_id", riderID.String()),
			logger.Err(err))
		return nil, apperrors.Internal(err)
	}

	logger.Info("Booking created",
		logger.String("booking_id", booking.ID.String()),
		logger.String("vehicle_type", string(booking.VehicleType)))

	return booking, nil
}

// GetBooking returns a booking to its owning rider
func (uc *tripUC) GetBooking(ctx context.Context, bookingID, riderID uuid.UUID) (*models.Booking, error) {
	booking, err := uc.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal(err)
	}
	if booking.RiderID != riderID {
		// same surface as a missing booking
		return nil, apperrors.NotFound("booking not found")
	}

	return booking, nil
}

// UpdateBooking applies a rider's patch while the booking is still open
func (uc *tripUC) UpdateBooking(ctx context.Context, bookingID, riderID uuid.UUID, patch models.BookingPatch) (*models.Booking, error) {
	if patch.PickupLocation != nil && strings.TrimSpace(*patch.PickupLocation) == "" {
		return nil, apperrors.Validation("pickup location cannot be empty")
	}
	if patch.DropoffLocation != nil && strings.TrimSpace(*patch.DropoffLocation) == "" {
		return nil, apperrors.Validation("dropoff location cannot be empty")
	}
	if patch.VehicleType != nil && !patch.VehicleType.Valid() {
		return nil, apperrors.Validation("unknown vehicle type")
	}

	booking, err := uc.bookings.UpdateRequested(ctx, bookingID, riderID, patch)
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal(err)
	}

	return booking, nil
}

// CancelBooking transitions an open booking to cancelled for its rider
func (uc *tripUC) CancelBooking(ctx context.Context, bookingID, riderID uuid.UUID) (*models.Booking, error) {
	booking, err := uc.bookings.CancelRequested(ctx, bookingID, riderID, time.Now())
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal(err)
	}

	logger.Info("Booking cancelled", logger.String("booking_id", bookingID.String()))
	return booking, nil
}

// ListOpenBookings returns the driver-facing feed of requested bookings
func (uc *tripUC) ListOpenBookings(ctx context.Context) ([]models.OpenBooking, error) {
	open, err := uc.bookings.ListOpen(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return open, nil
}

// AcceptBooking claims an open booking for a driver. Many drivers race
// here; the single conditional write on the booking status decides the
// winner and everyone else fails cleanly. Ride and payment creation
// happen only after the claim committed.
func (uc *tripUC) AcceptBooking(ctx context.Context, bookingID, driverID uuid.UUID) (*models.Ride, error) {
	driver, err := uc.accounts.GetAccount(ctx, driverID, models.RoleDriver)
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("driver account not found")
		}
		return nil, apperrors.Internal(err)
	}
	if !driver.IsActive {
		return nil, apperrors.Authorization("driver account is not active")
	}

	vehicle, err := uc.vehicles.GetActiveVehicle(ctx, driverID)
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.Precondition("driver has no active vehicle")
		}
		return nil, apperrors.Internal(err)
	}

	booking, err := uc.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal(err)
	}
	if booking.Status != models.BookingStatusRequested {
		return nil, apperrors.NotFound("booking not found")
	}
	if booking.VehicleType != vehicle.Type {
		return nil, apperrors.Validation("vehicle type does not match the requested booking")
	}

	// The concurrency guard. Anyone who raced past the read above and
	// lost gets zero rows here, not a second ride.
	if err := uc.bookings.AcceptRequested(ctx, bookingID); err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.Conflict("booking is no longer open")
		}
		return nil, apperrors.Internal(err)
	}

	now := time.Now()
	ride := &models.Ride{
		ID:         uuid.New(),
		BookingID:  booking.ID,
		RiderID:    booking.RiderID,
		DriverID:   driverID,
		VehicleID:  vehicle.ID,
		DistanceKm: booking.EstimatedKm,
		Fare:       booking.EstimatedFare,
		Status:     models.RideStatusAccepted,
		AcceptedAt: now,
	}

	// Past this point the booking is committed as accepted. A failure
	// below leaves an accepted booking without a ride or payment, which
	// operators must reconcile by hand; it must never be silent.
	if err := uc.rides.CreateRide(ctx, ride); err != nil {
		logger.Error("Accepted booking has no ride; manual reconciliation required",
			logger.Bool("alert", true),
			logger.String("booking_id", booking.ID.String()),
			logger.String("driver_id", driverID.String()),
			logger.Err(err))
		return nil, apperrors.Internal(err)
	}

	payment := &models.Payment{
		RideID:    ride.ID,
		RiderID:   ride.RiderID,
		DriverID:  ride.DriverID,
		Amount:    ride.Fare,
		Status:    models.PaymentStatusPending,
		CreatedAt: now,
	}
	if err := uc.payments.CreatePayment(ctx, payment); err != nil {
		logger.Error("Ride has no payment record; manual reconciliation required",
			logger.Bool("alert", true),
			logger.String("ride_id", ride.ID.String()),
			logger.Err(err))
		return nil, apperrors.Internal(err)
	}

	if err := uc.tripGW.PublishBookingAccepted(ctx, ride); err != nil {
		logger.Warn("Failed to publish booking accepted event",
			logger.String("ride_id", ride.ID.String()),
			logger.Err(err))
	}

	logger.Info("Booking accepted",
		logger.String("booking_id", booking.ID.String()),
		logger.String("ride_id", ride.ID.String()),
		logger.String("driver_id", driverID.String()))

	return ride, nil
}
