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

// RateRide records the rider's rating for a completed ride, then bumps
// the driver's aggregate on the account directory. The two writes are
// ordered but not atomic: a rating without its aggregate update is an
// operator-facing alert, never an ignored error, and never retried
// automatically (a retry could double the increment).
func (uc *tripUC) RateRide(ctx context.Context, rideID, riderID uuid.UUID, req models.RatingRequest) (*models.Rating, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.Validation("rating must be an integer between 1 and 5")
	}

	ride, err := uc.rides.GetRide(ctx, rideID)
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("ride not found")
		}
		return nil, apperrors.Internal(err)
	}
	if ride.RiderID != riderID {
		return nil, apperrors.NotFound("ride not found")
	}
	if ride.Status != models.RideStatusCompleted {
		return nil, apperrors.NotFound("ride not found")
	}

	rating := &models.Rating{
		RideID:    rideID,
		RiderID:   riderID,
		DriverID:  ride.DriverID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err := uc.ratings.CreateRating(ctx, rating); err != nil {
		if errors.Is(err, trips.ErrConflict) {
			return nil, apperrors.Conflict("ride has already been rated")
		}
		return nil, apperrors.Internal(err)
	}

	if err := uc.accounts.IncrementDriverRating(ctx, ride.DriverID, req.Rating); err != nil {
		logger.Error("Rating stored but driver aggregate not updated; manual reconciliation required",
			logger.Bool("alert", true),
			logger.String("ride_id", rideID.String()),
			logger.String("driver_id", ride.DriverID.String()),
			logger.Int("rating", req.Rating),
			logger.Err(err))
		return nil, apperrors.Internal(err)
	}

	logger.Info("Ride rated",
		logger.String("ride_id", rideID.String()),
		logger.Int("rating", req.Rating))

	return rating, nil
}
