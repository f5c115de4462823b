package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/services/trips"
)

// RatingRepo implements the rating ledger over postgres
type RatingRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(cfg *models.Config, db *sqlx.DB) *RatingRepo {
	return &RatingRepo{
		cfg: cfg,
		db:  db,
	}
}

// CreateRating inserts a rating for a (ride, rider) pair. The unique
// key on (ride_id, rider_id) plus ON CONFLICT DO NOTHING makes the
// insert conditional: zero affected rows means a rating already exists.
func (r *RatingRepo) CreateRating(ctx context.Context, rating *models.Rating) error {
	query := `
		INSERT INTO ratings (
			ride_id, rider_id, driver_id, rating, comment, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (ride_id, rider_id) DO NOTHING
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		rating.RideID,
		rating.RiderID,
		rating.DriverID,
		rating.Rating,
		rating.Comment,
		rating.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rating: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return trips.ErrConflict
	}

	return nil
}
