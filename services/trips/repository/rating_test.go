package repository

import (
	"context"
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

func setupRatingRepoTest(t *testing.T) (*RatingRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	repo := &RatingRepo{
		cfg: &models.Config{},
		db:  sqlxDB,
	}

	cleanup := func() {
		sqlxDB.Close()
	}

	return repo, mock, cleanup
}

func TestCreateRating_FirstWins(t *testing.T) {
	repo, mock, cleanup := setupRatingRepoTest(t)
	defer cleanup()

	rating := &models.Rating{
		RideID:    uuid.New(),
		RiderID:   uuid.New(),
		DriverID:  uuid.New(),
		Rating:    5,
		Comment:   "great driver",
		CreatedAt: time.Now(),
	}

	mock.ExpectExec("^INSERT INTO ratings (.+) ON CONFLICT \\(ride_id, rider_id\\) DO NOTHING").
		WithArgs(rating.RideID, rating.RiderID, rating.DriverID, rating.Rating, rating.Comment, rating.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateRating(context.Background(), rating)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRating_SecondLoses(t *testing.T) {
	repo, mock, cleanup := setupRatingRepoTest(t)
	defer cleanup()

	rating := &models.Rating{
		RideID:    uuid.New(),
		RiderID:   uuid.New(),
		DriverID:  uuid.New(),
		Rating:    2,
		CreatedAt: time.Now(),
	}

	// The unique key swallowed the insert; zero rows means a rating
	// already exists for this (ride, rider) pair.
	mock.ExpectExec("^INSERT INTO ratings (.+) ON CONFLICT \\(ride_id, rider_id\\) DO NOTHING").
		WithArgs(rating.RideID, rating.RiderID, rating.DriverID, rating.Rating, rating.Comment, rating.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CreateRating(context.Background(), rating)
	assert.ErrorIs(t, err, trips.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
