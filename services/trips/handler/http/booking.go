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

// BookingHandler handles HTTP requests for booking operations
type BookingHandler struct {
	tripUC trips.TripUC
}

// NewBookingHandler creates a new booking HTTP handler
func NewBookingHandler(tripUC trips.TripUC) *BookingHandler {
	return &BookingHandler{
		tripUC: tripUC,
	}
}

// CreateBooking handles a rider's trip request
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	riderID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	booking, err := h.tripUC.CreateBooking(c.Request().Context(), riderID, req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusCreated, "Booking created", booking)
}

// GetBooking returns a booking to its owning rider
func (h *BookingHandler) GetBooking(c echo.Context) error {
	riderID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid booking ID")
	}

	booking, err := h.tripUC.GetBooking(c.Request().Context(), bookingID, riderID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", booking)
}

// UpdateBooking applies a rider's patch to an open booking
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	riderID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid booking ID")
	}

	var patch models.BookingPatch
	if err := c.Bind(&patch); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	booking, err := h.tripUC.UpdateBooking(c.Request().Context(), bookingID, riderID, patch)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Booking updated", booking)
}

// CancelBooking cancels a rider's open booking
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	riderID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid booking ID")
	}

	booking, err := h.tripUC.CancelBooking(c.Request().Context(), bookingID, riderID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Booking cancelled", booking)
}

// ListOpenBookings returns the driver-facing feed of requested bookings
func (h *BookingHandler) ListOpenBookings(c echo.Context) error {
	open, err := h.tripUC.ListOpenBookings(c.Request().Context())
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", open)
}

// AcceptBooking lets a driver claim an open booking
func (h *BookingHandler) AcceptBooking(c echo.Context) error {
	driverID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid booking ID")
	}

	ride, err := h.tripUC.AcceptBooking(c.Request().Context(), bookingID, driverID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Booking accepted", ride)
}
