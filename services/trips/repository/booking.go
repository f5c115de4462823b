package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/praswib/tumpangan/internal/pkg/constants"
	"github.com/praswib/tumpangan/internal/pkg/database"
	"github.com/praswib/tumpangan/internal/pkg/logger"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/services/trips"
)

// BookingRepo implements the booking ledger over postgres, with a
// redis read-through cache for the driver-facing open bookings feed.
type BookingRepo struct {
	cfg         *models.Config
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(
	cfg *models.Config,
	db *sqlx.DB,
	redisClient *database.RedisClient,
) *BookingRepo {
	return &BookingRepo{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}

const bookingColumns = `id, rider_id, pickup_location, dropoff_location, vehicle_type, estimated_km, estimated_fare, status, created_at, cancelled_at`

// CreateBooking inserts a new booking with status requested
func (r *BookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, rider_id, pickup_location, dropoff_location,
			vehicle_type, estimated_km, estimated_fare, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		booking.ID,
		booking.RiderID,
		booking.PickupLocation,
		booking.DropoffLocation,
		booking.VehicleType,
		booking.EstimatedKm,
		booking.EstimatedFare,
		booking.Status,
		booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	r.invalidateOpenBookings(ctx)
	return nil
}

// GetBooking retrieves a booking by ID
func (r *BookingRepo) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// UpdateRequested applies a rider's patch while the booking is still
// requested and owned by the rider. The guard lives in the WHERE clause;
// zero rows means missing, foreign, or no longer open.
func (r *BookingRepo) UpdateRequested(ctx context.Context, id, riderID uuid.UUID, patch models.BookingPatch) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET pickup_location = COALESCE($3, pickup_location),
			dropoff_location = COALESCE($4, dropoff_location),
			vehicle_type = COALESCE($5, vehicle_type)
		WHERE id = $1 AND rider_id = $2 AND status = $6
		RETURNING ` + bookingColumns

	var booking models.Booking
	err := r.db.GetContext(ctx, &booking, query, id, riderID,
		patch.PickupLocation, patch.DropoffLocation, patch.VehicleType,
		models.BookingStatusRequested,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	r.invalidateOpenBookings(ctx)
	return &booking, nil
}

// CancelRequested transitions requested -> cancelled for the owning rider
func (r *BookingRepo) CancelRequested(ctx context.Context, id, riderID uuid.UUID, at time.Time) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $4, cancelled_at = $3
		WHERE id = $1 AND rider_id = $2 AND status = $5
		RETURNING ` + bookingColumns

	var booking models.Booking
	err := r.db.GetContext(ctx, &booking, query, id, riderID, at,
		models.BookingStatusCancelled, models.BookingStatusRequested,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	r.invalidateOpenBookings(ctx)
	return &booking, nil
}

// AcceptRequested performs the accept compare-and-set: requested ->
// accepted only if the booking is still requested at write time. This is
// the whole concurrency guard for the accept race; there is no lock. A
// zero rows result means another driver already committed.
func (r *BookingRepo) AcceptRequested(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE bookings SET status = $2 WHERE id = $1 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, id,
		models.BookingStatusAccepted, models.BookingStatusRequested,
	)
	if err != nil {
		return fmt.Errorf("failed to accept booking: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return trips.ErrNotFound
	}

	r.invalidateOpenBookings(ctx)
	return nil
}

// ListOpen returns every requested booking, rider identity redacted.
// Served from redis when the cached feed is fresh.
func (r *BookingRepo) ListOpen(ctx context.Context) ([]models.OpenBooking, error) {
	if cached, err := r.redisClient.Get(ctx, constants.KeyOpenBookings); err == nil {
		var open []models.OpenBooking
		if err := json.Unmarshal([]byte(cached), &open); err == nil {
			return open, nil
		}
	}

	query := `
		SELECT id, pickup_location, dropoff_location, vehicle_type, estimated_km, estimated_fare, created_at
		FROM bookings
		WHERE status = $1
		ORDER BY created_at ASC
	`

	open := []models.OpenBooking{}
	if err := r.db.SelectContext(ctx, &open, query, models.BookingStatusRequested); err != nil {
		return nil, fmt.Errorf("failed to list open bookings: %w", err)
	}

	if data, err := json.Marshal(open); err == nil {
		if err := r.redisClient.Set(ctx, constants.KeyOpenBookings, data, constants.OpenBookingsTTL); err != nil {
			logger.Warn("Failed to cache open bookings feed", logger.Err(err))
		}
	}

	return open, nil
}

// invalidateOpenBookings drops the cached feed after any write that
// changes the set of requested bookings. The short TTL backstops a
// failed delete.
func (r *BookingRepo) invalidateOpenBookings(ctx context.Context) {
	if err := r.redisClient.Delete(ctx, constants.KeyOpenBookings); err != nil {
		logger.Warn("Failed to invalidate open bookings cache", logger.Err(err))
	}
}
