package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/praswib/tumpangan/internal/pkg/apperrors"
	"github.com/praswib/tumpangan/internal/pkg/logger"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/services/trips"
)

// StartRide transitions the driver's ride from accepted to ongoing
func (uc *tripUC) StartRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error) {
	ride, err := uc.rides.StartRide(ctx, rideID, driverID, time.Now())
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("ride not found")
		}
		return nil, apperrors.Internal(err)
	}

	if err := uc.tripGW.PublishRideStarted(ctx, ride); err != nil {
		logger.Warn("Failed to publish ride started event",
			logger.String("ride_id", rideID.String()),
			logger.Err(err))
	}

	logger.Info("Ride started", logger.String("ride_id", rideID.String()))
	return ride, nil
}

// CompleteRide transitions the driver's ride from ongoing to completed
func (uc *tripUC) CompleteRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error) {
	ride, err := uc.rides.CompleteRide(ctx, rideID, driverID, time.Now())
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("ride not found")
		}
		return nil, apperrors.Internal(err)
	}

	if err := uc.tripGW.PublishRideCompleted(ctx, ride); err != nil {
		logger.Warn("Failed to publish ride completed event",
			logger.String("ride_id", rideID.String()),
			logger.Err(err))
	}

	logger.Info("Ride completed",
		logger.String("ride_id", rideID.String()),
		logger.Float64("fare", ride.Fare))
	return ride, nil
}

// CancelRide lets the ride's rider or driver back out before pickup.
// Once the ride is ongoing this path is closed.
func (uc *tripUC) CancelRide(ctx context.Context, rideID, callerID uuid.UUID) (*models.Ride, error) {
	ride, err := uc.rides.CancelRide(ctx, rideID, callerID, time.Now())
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("ride not found")
		}
		return nil, apperrors.Internal(err)
	}

	if err := uc.tripGW.PublishRideCancelled(ctx, ride); err != nil {
		logger.Warn("Failed to publish ride cancelled event",
			logger.String("ride_id", rideID.String()),
			logger.Err(err))
	}

	logger.Info("Ride cancelled", logger.String("ride_id", rideID.String()))
	return ride, nil
}

// ForceCancelRide is the admin override: any ride that has not finished
// may be cancelled regardless of who owns it.
func (uc *tripUC) ForceCancelRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error) {
	ride, err := uc.rides.ForceCancelRide(ctx, rideID, time.Now())
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("ride not found")
		}
		return nil, apperrors.Internal(err)
	}

	if err := uc.tripGW.PublishRideCancelled(ctx, ride); err != nil {
		logger.Warn("Failed to publish ride cancelled event",
			logger.String("ride_id", rideID.String()),
			logger.Err(err))
	}

	logger.Info("Ride force-cancelled", logger.String("ride_id", rideID.String()))
	return ride, nil
}

// GetRide returns a ride enriched with rider, driver and vehicle
// projections. Only the ride's rider, its driver, or an admin may look;
// everyone else sees not-found.
func (uc *tripUC) GetRide(ctx context.Context, rideID, callerID uuid.UUID, isAdmin bool) (*models.RideDetail, error) {
	ride, err := uc.rides.GetRide(ctx, rideID)
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("ride not found")
		}
		return nil, apperrors.Internal(err)
	}

	if !isAdmin && callerID != ride.RiderID && callerID != ride.DriverID {
		return nil, apperrors.NotFound("ride not found")
	}

	rider, err := uc.accounts.GetAccount(ctx, ride.RiderID, models.RoleRider)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	driver, err := uc.accounts.GetAccount(ctx, ride.DriverID, models.RoleDriver)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	vehicle, err := uc.vehicles.GetVehicle(ctx, ride.VehicleID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	detail := &models.RideDetail{
		Ride: *ride,
		Rider: models.AccountProjection{
			ID:       rider.ID,
			FullName: rider.FullName,
			MSISDN:   rider.MSISDN,
		},
		Driver: models.AccountProjection{
			ID:       driver.ID,
			FullName: driver.FullName,
			MSISDN:   driver.MSISDN,
			Rating:   driver.Rating(),
		},
		Vehicle: *vehicle,
	}

	// Payment is part of the view when present; a reconciliation gap
	// must not make the whole ride unreadable.
	payment, err := uc.payments.GetPaymentByRideID(ctx, rideID)
	if err == nil {
		detail.Payment = payment
	} else if !errors.Is(err, trips.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	return detail, nil
}
