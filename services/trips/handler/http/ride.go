package http

import (
	nethttp "net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/praswib/tumpangan/internal/pkg/middleware"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/internal/utils"
	"github.com/praswib/tumpangan/services/trips"
)

// RideHandler handles HTTP requests for ride operations
type RideHandler struct {
	tripUC trips.TripUC
}

// NewRideHandler creates a new ride HTTP handler
func NewRideHandler(tripUC trips.TripUC) *RideHandler {
	return &RideHandler{
		tripUC: tripUC,
	}
}

func rideIDParam(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("rideID"))
}

// StartRide handles the driver's pickup confirmation
func (h *RideHandler) StartRide(c echo.Context) error {
	driverID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	ride, err := h.tripUC.StartRide(c.Request().Context(), rideID, driverID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Ride started", ride)
}

// CompleteRide handles the driver's dropoff confirmation
func (h *RideHandler) CompleteRide(c echo.Context) error {
	driverID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	ride, err := h.tripUC.CompleteRide(c.Request().Context(), rideID, driverID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Ride completed", ride)
}

// CancelRide lets the ride's rider or driver back out before pickup
func (h *RideHandler) CancelRide(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	ride, err := h.tripUC.CancelRide(c.Request().Context(), rideID, callerID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Ride cancelled", ride)
}

// ForceCancelRide is the admin override for stuck rides
func (h *RideHandler) ForceCancelRide(c echo.Context) error {
	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	ride, err := h.tripUC.ForceCancelRide(c.Request().Context(), rideID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Ride cancelled", ride)
}

// GetRide returns the enriched ride view to its rider, driver, or an admin
func (h *RideHandler) GetRide(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	role, _ := middleware.CallerRole(c)

	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	detail, err := h.tripUC.GetRide(c.Request().Context(), rideID, callerID, role == models.RoleAdmin)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", detail)
}

// PayForRide settles the ride's payment for the owning rider
func (h *RideHandler) PayForRide(c echo.Context) error {
	riderID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	var req models.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	payment, err := h.tripUC.PayForRide(c.Request().Context(), rideID, riderID, req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Payment settled", payment)
}

// RateRide records the rider's rating for a completed ride
func (h *RideHandler) RateRide(c echo.Context) error {
	riderID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	rideID, err := rideIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	var req models.RatingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	rating, err := h.tripUC.RateRide(c.Request().Context(), rideID, riderID, req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusCreated, "Ride rated", rating)
}
