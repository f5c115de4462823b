package usecase

import (
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/services/trips"
)

// tripUC implements the trips.TripUC interface
type tripUC struct {
	cfg      *models.Config
	bookings trips.BookingRepo
	rides    trips.RideRepo
	payments trips.PaymentRepo
	ratings  trips.RatingRepo
	accounts trips.AccountRepo
	vehicles trips.VehicleRepo
	tripGW   trips.TripGW
	price    trips.PricingFunc
}

// NewTripUC creates a new trip lifecycle use case. A nil price falls
// back to the flat base-fare-plus-rate pricing from config.
func NewTripUC(
	cfg *models.Config,
	bookings trips.BookingRepo,
	rides trips.RideRepo,
	payments trips.PaymentRepo,
	ratings trips.RatingRepo,
	accounts trips.AccountRepo,
	vehicles trips.VehicleRepo,
	tripGW trips.TripGW,
	price trips.PricingFunc,
) (trips.TripUC, error) {
	if price == nil {
		pricing := cfg.Pricing
		price = func(distanceKm float64) float64 {
			return pricing.BaseFare + pricing.RatePerKm*distanceKm
		}
	}

	return &tripUC{
		cfg:      cfg,
		bookings: bookings,
		rides:    rides,
		payments: payments,
		ratings:  ratings,
		accounts: accounts,
		vehicles: vehicles,
		tripGW:   tripGW,
		price:    price,
	}, nil
}
