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

func setupAccountRepoTest(t *testing.T) (*AccountRepo, *VehicleRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	accounts := &AccountRepo{cfg: &models.Config{}, db: sqlxDB}
	vehicles := &VehicleRepo{cfg: &models.Config{}, db: sqlxDB}

	cleanup := func() {
		sqlxDB.Close()
	}

	return accounts, vehicles, mock, cleanup
}

func TestGetAccount_RoleScoped(t *testing.T) {
	accounts, _, mock, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	driverID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "fullname", "msisdn", "role", "is_active", "rating_count", "rating_sum", "created_at", "updated_at",
	}).AddRow(driverID, "Dodi", "+628222", models.RoleDriver, true, 4, 18, time.Now(), time.Now())

	mock.ExpectQuery("^SELECT (.+) FROM accounts WHERE id = (.+) AND role =").
		WithArgs(driverID, models.RoleDriver).
		WillReturnRows(rows)

	account, err := accounts.GetAccount(context.Background(), driverID, models.RoleDriver)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDriver, account.Role)
	require.NotNil(t, account.Rating())
	assert.Equal(t, 4.5, *account.Rating())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAccount_WrongRole(t *testing.T) {
	accounts, _, mock, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	riderID := uuid.New()

	// A rider ID queried under the driver role is invisible.
	mock.ExpectQuery("^SELECT (.+) FROM accounts WHERE id = (.+) AND role =").
		WithArgs(riderID, models.RoleDriver).
		WillReturnError(sql.ErrNoRows)

	_, err := accounts.GetAccount(context.Background(), riderID, models.RoleDriver)
	assert.ErrorIs(t, err, trips.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementDriverRating_Aggregate(t *testing.T) {
	accounts, _, mock, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	driverID := uuid.New()

	mock.ExpectExec("^UPDATE accounts SET rating_count = rating_count \\+ 1, rating_sum = rating_sum \\+").
		WithArgs(driverID, 5, models.RoleDriver).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := accounts.IncrementDriverRating(context.Background(), driverID, 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementDriverRating_NoSuchDriver(t *testing.T) {
	accounts, _, mock, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	driverID := uuid.New()

	mock.ExpectExec("^UPDATE accounts SET rating_count").
		WithArgs(driverID, 3, models.RoleDriver).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := accounts.IncrementDriverRating(context.Background(), driverID, 3)
	assert.ErrorIs(t, err, trips.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveVehicle_Repo(t *testing.T) {
	_, vehicles, mock, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	driverID := uuid.New()
	vehicleID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "driver_id", "vehicle_type", "plate", "is_active"}).
		AddRow(vehicleID, driverID, models.VehicleTypeMotorcycle, "B 1234 XYZ", true)

	mock.ExpectQuery("^SELECT (.+) FROM vehicles WHERE driver_id = (.+) AND is_active = true").
		WithArgs(driverID).
		WillReturnRows(rows)

	vehicle, err := vehicles.GetActiveVehicle(context.Background(), driverID)
	require.NoError(t, err)
	assert.Equal(t, vehicleID, vehicle.ID)
	assert.Equal(t, models.VehicleTypeMotorcycle, vehicle.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveVehicle_NoneRegistered(t *testing.T) {
	_, vehicles, mock, cleanup := setupAccountRepoTest(t)
	defer cleanup()

	driverID := uuid.New()

	mock.ExpectQuery("^SELECT (.+) FROM vehicles WHERE driver_id").
		WithArgs(driverID).
		WillReturnError(sql.ErrNoRows)

	_, err := vehicles.GetActiveVehicle(context.Background(), driverID)
	assert.ErrorIs(t, err, trips.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
