package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/services/trips"
)

func setupRideRepoTest(t *testing.T) (*RideRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	repo := &RideRepo{
		cfg: &models.Config{},
		db:  sqlxDB,
	}

	cleanup := func() {
		sqlxDB.Close()
	}

	return repo, mock, cleanup
}

func rideRows(r *models.Ride) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_id", "rider_id", "driver_id", "vehicle_id",
		"distance_km", "fare", "status", "accepted_at",
		"started_at", "completed_at", "cancelled_at", "duration_sec",
	}).AddRow(
		r.ID, r.BookingID, r.RiderID, r.DriverID, r.VehicleID,
		r.DistanceKm, r.Fare, r.Status, r.AcceptedAt,
		r.StartedAt, r.CompletedAt, r.CancelledAt, r.DurationSec,
	)
}

func TestCreateRide_Insert(t *testing.T) {
	repo, mock, cleanup := setupRideRepoTest(t)
	defer cleanup()

	ride := &models.Ride{
		ID:         uuid.New(),
		BookingID:  uuid.New(),
		RiderID:    uuid.New(),
		DriverID:   uuid.New(),
		VehicleID:  uuid.New(),
		DistanceKm: 7.5,
		Fare:       27500,
		Status:     models.RideStatusAccepted,
		AcceptedAt: time.Now(),
	}

	mock.ExpectExec("^INSERT INTO rides").
		WithArgs(
			ride.ID, ride.BookingID, ride.RiderID, ride.DriverID, ride.VehicleID,
			ride.DistanceKm, ride.Fare, ride.Status, ride.AcceptedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateRide(context.Background(), ride)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartRide_Transition(t *testing.T) {
	repo, mock, cleanup := setupRideRepoTest(t)
	defer cleanup()

	rideID := uuid.New()
	driverID := uuid.New()
	at := time.Now()

	started := &models.Ride{
		ID:         rideID,
		BookingID:  uuid.New(),
		RiderID:    uuid.New(),
		DriverID:   driverID,
		VehicleID:  uuid.New(),
		Status:     models.RideStatusOngoing,
		AcceptedAt: time.Now(),
		StartedAt:  &at,
	}

	mock.ExpectQuery("^UPDATE rides SET status = (.+), started_at = (.+) WHERE id = (.+) AND driver_id = (.+) AND status =").
		WithArgs(rideID, driverID, at, models.RideStatusOngoing, models.RideStatusAccepted).
		WillReturnRows(rideRows(started))

	ride, err := repo.StartRide(context.Background(), rideID, driverID, at)
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusOngoing, ride.Status)
	assert.NotNil(t, ride.StartedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartRide_WrongDriver(t *testing.T) {
	repo, mock, cleanup := setupRideRepoTest(t)
	defer cleanup()

	rideID := uuid.New()
	driverID := uuid.New()
	at := time.Now()

	// The ride exists under another driver; the guard sees no row.
	mock.ExpectQuery("^UPDATE rides SET status").
		WithArgs(rideID, driverID, at, models.RideStatusOngoing, models.RideStatusAccepted).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.StartRide(context.Background(), rideID, driverID, at)
	assert.ErrorIs(t, err, trips.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRide_DerivesDuration(t *testing.T) {
	repo, mock, cleanup := setupRideRepoTest(t)
	defer cleanup()

	rideID := uuid.New()
	driverID := uuid.New()
	at := time.Now()
	startedAt := at.Add(-25 * time.Minute)
	duration := 1500

	completed := &models.Ride{
		ID:          rideID,
		BookingID:   uuid.New(),
		RiderID:     uuid.New(),
		DriverID:    driverID,
		VehicleID:   uuid.New(),
		Fare:        27500,
		Status:      models.RideStatusCompleted,
		AcceptedAt:  startedAt.Add(-5 * time.Minute),
		StartedAt:   &startedAt,
		CompletedAt: &at,
		DurationSec: &duration,
	}

	mock.ExpectQuery("^UPDATE rides SET status = (.+), completed_at = (.+), duration_sec = EXTRACT").
		WithArgs(rideID, driverID, at, models.RideStatusCompleted, models.RideStatusOngoing).
		WillReturnRows(rideRows(completed))

	ride, err := repo.CompleteRide(context.Background(), rideID, driverID, at)
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusCompleted, ride.Status)
	require.NotNil(t, ride.DurationSec)
	assert.Equal(t, 1500, *ride.DurationSec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRide_EitherParty(t *testing.T) {
	repo, mock, cleanup := setupRideRepoTest(t)
	defer cleanup()

	rideID := uuid.New()
	callerID := uuid.New()
	at := time.Now()

	cancelled := &models.Ride{
		ID:          rideID,
		BookingID:   uuid.New(),
		RiderID:     callerID,
		DriverID:    uuid.New(),
		VehicleID:   uuid.New(),
		Status:      models.RideStatusCancelled,
		AcceptedAt:  time.Now(),
		CancelledAt: &at,
	}

	mock.ExpectQuery("^UPDATE rides SET status = (.+), cancelled_at = (.+) WHERE id = (.+) AND \\(rider_id = (.+) OR driver_id = (.+)\\) AND status =").
		WithArgs(rideID, callerID, at, models.RideStatusCancelled, models.RideStatusAccepted).
		WillReturnRows(rideRows(cancelled))

	ride, err := repo.CancelRide(context.Background(), rideID, callerID, at)
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusCancelled, ride.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForceCancelRide_BothStates(t *testing.T) {
	repo, mock, cleanup := setupRideRepoTest(t)
	defer cleanup()

	rideID := uuid.New()
	at := time.Now()

	cancelled := &models.Ride{
		ID:          rideID,
		BookingID:   uuid.New(),
		RiderID:     uuid.New(),
		DriverID:    uuid.New(),
		VehicleID:   uuid.New(),
		Status:      models.RideStatusCancelled,
		AcceptedAt:  time.Now(),
		CancelledAt: &at,
	}

	mock.ExpectQuery("^UPDATE rides SET status = (.+), cancelled_at = (.+) WHERE id = (.+) AND status IN").
		WithArgs(rideID, at, models.RideStatusCancelled, models.RideStatusAccepted, models.RideStatusOngoing).
		WillReturnRows(rideRows(cancelled))

	ride, err := repo.ForceCancelRide(context.Background(), rideID, at)
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusCancelled, ride.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForceCancelRide_AlreadyFinished(t *testing.T) {
	repo, mock, cleanup := setupRideRepoTest(t)
	defer cleanup()

	rideID := uuid.New()
	at := time.Now()

	mock.ExpectQuery("^UPDATE rides SET status").
		WithArgs(rideID, at, models.RideStatusCancelled, models.RideStatusAccepted, models.RideStatusOngoing).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.ForceCancelRide(context.Background(), rideID, at)
	assert.ErrorIs(t, err, trips.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
