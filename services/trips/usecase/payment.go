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

// PayForRide settles the ride's pending payment for the owning rider.
// Settlement is terminal: there is no refund, partial payment, or retry
// at a different amount. A repeat call finds no pending payment.
func (uc *tripUC) PayForRide(ctx context.Context, rideID, riderID uuid.UUID, req models.PaymentRequest) (*models.Payment, error) {
	if !req.Method.Valid() {
		return nil, apperrors.Validation("unknown payment method")
	}

	payment, err := uc.payments.SettlePayment(ctx, rideID, riderID, req.Method, req.TransactionRef, time.Now())
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			return nil, apperrors.NotFound("payment not found")
		}
		return nil, apperrors.Internal(err)
	}

	if err := uc.tripGW.PublishPaymentSettled(ctx, payment); err != nil {
		logger.Warn("Failed to publish payment settled event",
			logger.String("ride_id", rideID.String()),
			logger.Err(err))
	}

	logger.Info("Payment settled",
		logger.String("ride_id", rideID.String()),
		logger.String("method", string(payment.Method)),
		logger.Float64("amount", payment.Amount))

	return payment, nil
}
