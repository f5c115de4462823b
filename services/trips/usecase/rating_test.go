package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/praswib/tumpangan/internal/pkg/apperrors"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/services/trips"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateRide_Success(t *testing.T) {
	uc, deps := newTestUC(t)
	rideID := uuid.New()
	riderID := uuid.New()
	driverID := uuid.New()

	deps.rides.EXPECT().GetRide(gomock.Any(), rideID).Return(&models.Ride{
		ID:       rideID,
		RiderID:  riderID,
		DriverID: driverID,
		Status:   models.RideStatusCompleted,
	}, nil)
	deps.ratings.EXPECT().CreateRating(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *models.Rating) error {
			assert.Equal(t, driverID, r.DriverID)
			assert.Equal(t, 5, r.Rating)
			return nil
		})
	deps.accounts.EXPECT().IncrementDriverRating(gomock.Any(), driverID, 5).Return(nil)

	rating, err := uc.RateRide(context.Background(), rideID, riderID, models.RatingRequest{Rating: 5, Comment: "smooth trip"})
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Rating)
	assert.Equal(t, "smooth trip", rating.Comment)
}

func TestRateRide_OutOfRange(t *testing.T) {
	uc, _ := newTestUC(t)

	for _, value := range []int{0, 6, -1} {
		_, err := uc.RateRide(context.Background(), uuid.New(), uuid.New(), models.RatingRequest{Rating: value})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
}

func TestRateRide_NotTheRider(t *testing.T) {
	uc, deps := newTestUC(t)
	rideID := uuid.New()

	deps.rides.EXPECT().GetRide(gomock.Any(), rideID).Return(&models.Ride{
		ID:       rideID,
		RiderID:  uuid.New(),
		DriverID: uuid.New(),
		Status:   models.RideStatusCompleted,
	}, nil)

	_, err := uc.RateRide(context.Background(), rideID, uuid.New(), models.RatingRequest{Rating: 4})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestRateRide_NotCompleted(t *testing.T) {
	uc, deps := newTestUC(t)
	rideID := uuid.New()
	riderID := uuid.New()

	deps.rides.EXPECT().GetRide(gomock.Any(), rideID).Return(&models.Ride{
		ID:       rideID,
		RiderID:  riderID,
		DriverID: uuid.New(),
		Status:   models.RideStatusOngoing,
	}, nil)

	_, err := uc.RateRide(context.Background(), rideID, riderID, models.RatingRequest{Rating: 4})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestRateRide_DoubleRating(t *testing.T) {
	uc, deps := newTestUC(t)
	rideID := uuid.New()
	riderID := uuid.New()

	deps.rides.EXPECT().GetRide(gomock.Any(), rideID).Return(&models.Ride{
		ID:       rideID,
		RiderID:  riderID,
		DriverID: uuid.New(),
		Status:   models.RideStatusCompleted,
	}, nil)
	deps.ratings.EXPECT().CreateRating(gomock.Any(), gomock.Any()).Return(trips.ErrConflict)

	_, err := uc.RateRide(context.Background(), rideID, riderID, models.RatingRequest{Rating: 3})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestRateRide_AggregateUpdateFails(t *testing.T) {
	uc, deps := newTestUC(t)
	rideID := uuid.New()
	riderID := uuid.New()
	driverID := uuid.New()

	deps.rides.EXPECT().GetRide(gomock.Any(), rideID).Return(&models.Ride{
		ID:       rideID,
		RiderID:  riderID,
		DriverID: driverID,
		Status:   models.RideStatusCompleted,
	}, nil)
	deps.ratings.EXPECT().CreateRating(gomock.Any(), gomock.Any()).Return(nil)
	deps.accounts.EXPECT().IncrementDriverRating(gomock.Any(), driverID, 4).Return(errors.New("connection reset"))

	// The rating row is in but the aggregate is not; the caller still
	// gets an error, never a silent success.
	_, err := uc.RateRide(context.Background(), rideID, riderID, models.RatingRequest{Rating: 4})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}
