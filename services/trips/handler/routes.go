package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/praswib/tumpangan/internal/pkg/middleware"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/services/trips"
	httpHandler "github.com/praswib/tumpangan/services/trips/handler/http"
)

// Handler combines all handlers for the trips service
type Handler struct {
	bookingHTTP *httpHandler.BookingHandler
	rideHTTP    *httpHandler.RideHandler
	cfg         *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(tripUC trips.TripUC, cfg *models.Config) *Handler {
	return &Handler{
		bookingHTTP: httpHandler.NewBookingHandler(tripUC),
		rideHTTP:    httpHandler.NewRideHandler(tripUC),
		cfg:         cfg,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("", middleware.JWTAuthMiddleware(h.cfg.JWT))

	bookings := api.Group("/bookings")
	bookings.POST("", h.bookingHTTP.CreateBooking, middleware.RequireRole(models.RoleRider))
	bookings.GET("/open", h.bookingHTTP.ListOpenBookings, middleware.RequireRole(models.RoleDriver))
	bookings.GET("/:bookingID", h.bookingHTTP.GetBooking, middleware.RequireRole(models.RoleRider))
	bookings.PATCH("/:bookingID", h.bookingHTTP.UpdateBooking, middleware.RequireRole(models.RoleRider))
	bookings.PATCH("/:bookingID/cancel", h.bookingHTTP.CancelBooking, middleware.RequireRole(models.RoleRider))
	bookings.PATCH("/:bookingID/accept", h.bookingHTTP.AcceptBooking, middleware.RequireRole(models.RoleDriver))

	rides := api.Group("/rides")
	rides.GET("/:rideID", h.rideHTTP.GetRide, middleware.RequireRole(models.RoleRider, models.RoleDriver, models.RoleAdmin))
	rides.PATCH("/:rideID/start", h.rideHTTP.StartRide, middleware.RequireRole(models.RoleDriver))
	rides.PATCH("/:rideID/complete", h.rideHTTP.CompleteRide, middleware.RequireRole(models.RoleDriver))
	rides.PATCH("/:rideID/cancel", h.rideHTTP.CancelRide, middleware.RequireRole(models.RoleRider, models.RoleDriver))
	rides.PATCH("/:rideID/payment", h.rideHTTP.PayForRide, middleware.RequireRole(models.RoleRider))
	rides.POST("/:rideID/rating", h.rideHTTP.RateRide, middleware.RequireRole(models.RoleRider))
	rides.PATCH("/:rideID/force-cancel", h.rideHTTP.ForceCancelRide, middleware.RequireRole(models.RoleAdmin))
}
