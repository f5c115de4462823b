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

// PaymentRepo implements the payment ledger over postgres
type PaymentRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(cfg *models.Config, db *sqlx.DB) *PaymentRepo {
	return &PaymentRepo{
		cfg: cfg,
		db:  db,
	}
}

const paymentColumns = `ride_id, rider_id, driver_id, amount, payment_method, transaction_ref, status, created_at, paid_at`

// CreatePayment inserts the pending payment created alongside a ride
func (r *PaymentRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (
			ride_id, rider_id, driver_id, amount, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		payment.RideID,
		payment.RiderID,
		payment.DriverID,
		payment.Amount,
		payment.Status,
		payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// GetPaymentByRideID retrieves the payment attached to a ride
func (r *PaymentRepo) GetPaymentByRideID(ctx context.Context, rideID uuid.UUID) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE ride_id = $1`

	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, rideID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

// SettlePayment transitions the rider's pending payment to success in a
// single conditional write. A second settlement attempt finds no pending
// row and reports not found.
func (r *PaymentRepo) SettlePayment(ctx context.Context, rideID, riderID uuid.UUID, method models.PaymentMethod, ref string, at time.Time) (*models.Payment, error) {
	query := `
		UPDATE payments
		SET status = $6, payment_method = $3, transaction_ref = $4, paid_at = $5
		WHERE ride_id = $1 AND rider_id = $2 AND status = $7
		RETURNING ` + paymentColumns

	var payment models.Payment
	err := r.db.GetContext(ctx, &payment, query, rideID, riderID, method, ref, at,
		models.PaymentStatusSuccess, models.PaymentStatusPending,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, fmt.Errorf("failed to settle payment: %w", err)
	}

	return &payment, nil
}
