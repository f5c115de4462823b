package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/services/trips"
)

// AccountRepo reads identities from the account directory and carries
// the single write the trips service performs against it: the driver
// rating aggregate bump.
type AccountRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewAccountRepository creates a new account directory adapter
func NewAccountRepository(cfg *models.Config, db *sqlx.DB) *AccountRepo {
	return &AccountRepo{
		cfg: cfg,
		db:  db,
	}
}

// GetAccount retrieves an account by ID and role
func (r *AccountRepo) GetAccount(ctx context.Context, id uuid.UUID, role models.Role) (*models.Account, error) {
	query := `
		SELECT id, fullname, msisdn, role, is_active, rating_count, rating_sum, created_at, updated_at
		FROM accounts
		WHERE id = $1 AND role = $2
	`

	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, id, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// IncrementDriverRating bumps the driver's aggregate by one rating
func (r *AccountRepo) IncrementDriverRating(ctx context.Context, driverID uuid.UUID, rating int) error {
	query := `
		UPDATE accounts
		SET rating_count = rating_count + 1, rating_sum = rating_sum + $2, updated_at = now()
		WHERE id = $1 AND role = $3
	`

	result, err := r.db.ExecContext(ctx, query, driverID, rating, models.RoleDriver)
	if err != nil {
		return fmt.Errorf("failed to increment driver rating: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return trips.ErrNotFound
	}

	return nil
}

// VehicleRepo reads a driver's active vehicle from the vehicle registry
type VehicleRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewVehicleRepository creates a new vehicle registry adapter
func NewVehicleRepository(cfg *models.Config, db *sqlx.DB) *VehicleRepo {
	return &VehicleRepo{
		cfg: cfg,
		db:  db,
	}
}

// GetActiveVehicle returns the driver's single active vehicle
func (r *VehicleRepo) GetActiveVehicle(ctx context.Context, driverID uuid.UUID) (*models.Vehicle, error) {
	query := `
		SELECT id, driver_id, vehicle_type, plate, is_active
		FROM vehicles
		WHERE driver_id = $1 AND is_active = true
		LIMIT 1
	`

	var vehicle models.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, query, driverID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active vehicle: %w", err)
	}

	return &vehicle, nil
}

// GetVehicle retrieves a vehicle by ID
func (r *VehicleRepo) GetVehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	query := `
		SELECT id, driver_id, vehicle_type, plate, is_active
		FROM vehicles
		WHERE id = $1
	`

	var vehicle models.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &vehicle, nil
}
