package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/services/trips"
)

// RideRepo implements the ride ledger over postgres. Ownership and the
// expected current status are folded into the WHERE clause of every
// transition, so a missing ride, a foreign ride and a wrong-state ride
// all surface as the same zero-rows outcome.
type RideRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewRideRepository creates a new ride repository
func NewRideRepository(cfg *models.Config, db *sqlx.DB) *RideRepo {
	return &RideRepo{
		cfg: cfg,
		db:  db,
	}
}

const rideColumns = `id, booking_id, rider_id, driver_id, vehicle_id, distance_km, fare, status, accepted_at, started_at, completed_at, cancelled_at, duration_sec`

// CreateRide inserts the ride derived from an accepted booking
func (r *RideRepo) CreateRide(ctx context.Context, ride *models.Ride) error {
	query := `
		INSERT INTO rides (
			id, booking_id, rider_id, driver_id, vehicle_id,
			distance_km, fare, status, accepted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		ride.ID,
		ride.BookingID,
		ride.RiderID,
		ride.DriverID,
		ride.VehicleID,
		ride.DistanceKm,
		ride.Fare,
		ride.Status,
		ride.AcceptedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ride: %w", err)
	}

	return nil
}

// GetRide retrieves a ride by ID
func (r *RideRepo) GetRide(ctx context.Context, id uuid.UUID) (*models.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	var ride models.Ride
	if err := r.db.GetContext(ctx, &ride, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	return &ride, nil
}

// StartRide transitions accepted -> ongoing for the assigned driver
func (r *RideRepo) StartRide(ctx context.Context, id, driverID uuid.UUID, at time.Time) (*models.Ride, error) {
	query := `
		UPDATE rides
		SET status = $4, started_at = $3
		WHERE id = $1 AND driver_id = $2 AND status = $5
		RETURNING ` + rideColumns

	var ride models.Ride
	err := r.db.GetContext(ctx, &ride, query, id, driverID, at,
		models.RideStatusOngoing, models.RideStatusAccepted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to start ride: %w", err)
	}

	return &ride, nil
}

// CompleteRide transitions ongoing -> completed for the assigned driver,
// deriving the duration from the recorded start time in the same write.
func (r *RideRepo) CompleteRide(ctx context.Context, id, driverID uuid.UUID, at time.Time) (*models.Ride, error) {
	query := `
		UPDATE rides
		SET status = $4, completed_at = $3,
			duration_sec = EXTRACT(EPOCH FROM ($3::timestamptz - started_at))::int
		WHERE id = $1 AND driver_id = $2 AND status = $5
		RETURNING ` + rideColumns

	var ride models.Ride
	err := r.db.GetContext(ctx, &ride, query, id, driverID, at,
		models.RideStatusCompleted, models.RideStatusOngoing,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to complete ride: %w", err)
	}

	return &ride, nil
}

// CancelRide transitions accepted -> cancelled for the ride's rider or
// driver. A ride that already started cannot be cancelled this way.
func (r *RideRepo) CancelRide(ctx context.Context, id, callerID uuid.UUID, at time.Time) (*models.Ride, error) {
	query := `
		UPDATE rides
		SET status = $4, cancelled_at = $3
		WHERE id = $1 AND (rider_id = $2 OR driver_id = $2) AND status = $5
		RETURNING ` + rideColumns

	var ride models.Ride
	err := r.db.GetContext(ctx, &ride, query, id, callerID, at,
		models.RideStatusCancelled, models.RideStatusAccepted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to cancel ride: %w", err)
	}

	return &ride, nil
}

// ForceCancelRide is the admin path: any not-yet-finished ride may be
// cancelled regardless of ownership.
func (r *RideRepo) ForceCancelRide(ctx context.Context, id uuid.UUID, at time.Time) (*models.Ride, error) {
	query := `
		UPDATE rides
		SET status = $3, cancelled_at = $2
		WHERE id = $1 AND status IN ($4, $5)
		RETURNING ` + rideColumns

	var ride models.Ride
	err := r.db.GetContext(ctx, &ride, query, id, at,
		models.RideStatusCancelled, models.RideStatusAccepted, models.RideStatusOngoing,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to force cancel ride: %w", err)
	}

	return &ride, nil
}
