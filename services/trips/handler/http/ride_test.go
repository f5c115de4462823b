package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/praswib/tumpangan/internal/pkg/apperrors"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/services/trips/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRideHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTripUC(ctrl)
	handler := NewRideHandler(mockUC)

	driverID := uuid.New()
	rideID := uuid.New()
	c, rec := newBookingContext(http.MethodPatch, "/rides/"+rideID.String()+"/start", "", driverID, models.RoleDriver)
	c.SetParamNames("rideID")
	c.SetParamValues(rideID.String())

	mockUC.EXPECT().
		StartRide(gomock.Any(), rideID, driverID).
		Return(&models.Ride{ID: rideID, DriverID: driverID, Status: models.RideStatusOngoing}, nil)

	err := handler.StartRide(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartRideHandler_NotTheDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTripUC(ctrl)
	handler := NewRideHandler(mockUC)

	driverID := uuid.New()
	rideID := uuid.New()
	c, rec := newBookingContext(http.MethodPatch, "/rides/"+rideID.String()+"/start", "", driverID, models.RoleDriver)
	c.SetParamNames("rideID")
	c.SetParamValues(rideID.String())

	mockUC.EXPECT().
		StartRide(gomock.Any(), rideID, driverID).
		Return(nil, apperrors.NotFound("ride not found"))

	err := handler.StartRide(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRideHandler_AdminFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTripUC(ctrl)
	handler := NewRideHandler(mockUC)

	adminID := uuid.New()
	rideID := uuid.New()
	c, rec := newBookingContext(http.MethodGet, "/rides/"+rideID.String(), "", adminID, models.RoleAdmin)
	c.SetParamNames("rideID")
	c.SetParamValues(rideID.String())

	mockUC.EXPECT().
		GetRide(gomock.Any(), rideID, adminID, true).
		Return(&models.RideDetail{Ride: models.Ride{ID: rideID, Status: models.RideStatusOngoing}}, nil)

	err := handler.GetRide(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetRideHandler_RiderIsNotAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTripUC(ctrl)
	handler := NewRideHandler(mockUC)

	riderID := uuid.New()
	rideID := uuid.New()
	c, rec := newBookingContext(http.MethodGet, "/rides/"+rideID.String(), "", riderID, models.RoleRider)
	c.SetParamNames("rideID")
	c.SetParamValues(rideID.String())

	mockUC.EXPECT().
		GetRide(gomock.Any(), rideID, riderID, false).
		Return(&models.RideDetail{Ride: models.Ride{ID: rideID, RiderID: riderID}}, nil)

	err := handler.GetRide(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPayForRideHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTripUC(ctrl)
	handler := NewRideHandler(mockUC)

	riderID := uuid.New()
	rideID := uuid.New()
	body := `{"payment_method": "ewallet", "transaction_ref": "trx-99"}`
	c, rec := newBookingContext(http.MethodPatch, "/rides/"+rideID.String()+"/payment", body, riderID, models.RoleRider)
	c.SetParamNames("rideID")
	c.SetParamValues(rideID.String())

	mockUC.EXPECT().
		PayForRide(gomock.Any(), rideID, riderID, gomock.Any()).
		DoAndReturn(func(_ interface{}, _, _ uuid.UUID, req models.PaymentRequest) (*models.Payment, error) {
			assert.Equal(t, models.PaymentMethodEwallet, req.Method)
			assert.Equal(t, "trx-99", req.TransactionRef)
			return &models.Payment{RideID: rideID, RiderID: riderID, Status: models.PaymentStatusSuccess}, nil
		})

	err := handler.PayForRide(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "success", data["status"])
}

func TestRateRideHandler_Created(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTripUC(ctrl)
	handler := NewRideHandler(mockUC)

	riderID := uuid.New()
	rideID := uuid.New()
	body := `{"rating": 5, "comment": "smooth trip"}`
	c, rec := newBookingContext(http.MethodPost, "/rides/"+rideID.String()+"/rating", body, riderID, models.RoleRider)
	c.SetParamNames("rideID")
	c.SetParamValues(rideID.String())

	mockUC.EXPECT().
		RateRide(gomock.Any(), rideID, riderID, gomock.Any()).
		Return(&models.Rating{RideID: rideID, RiderID: riderID, Rating: 5, Comment: "smooth trip"}, nil)

	err := handler.RateRide(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRateRideHandler_DoubleRating(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTripUC(ctrl)
	handler := NewRideHandler(mockUC)

	riderID := uuid.New()
	rideID := uuid.New()
	c, rec := newBookingContext(http.MethodPost, "/rides/"+rideID.String()+"/rating", `{"rating": 4}`, riderID, models.RoleRider)
	c.SetParamNames("rideID")
	c.SetParamValues(rideID.String())

	mockUC.EXPECT().
		RateRide(gomock.Any(), rideID, riderID, gomock.Any()).
		Return(nil, apperrors.Conflict("ride has already been rated"))

	err := handler.RateRide(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForceCancelRideHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTripUC(ctrl)
	handler := NewRideHandler(mockUC)

	rideID := uuid.New()
	c, rec := newBookingContext(http.MethodPatch, "/rides/"+rideID.String()+"/force-cancel", "", uuid.New(), models.RoleAdmin)
	c.SetParamNames("rideID")
	c.SetParamValues(rideID.String())

	mockUC.EXPECT().
		ForceCancelRide(gomock.Any(), rideID).
		Return(&models.Ride{ID: rideID, Status: models.RideStatusCancelled}, nil)

	err := handler.ForceCancelRide(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCancelRideHandler_AfterPickup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTripUC(ctrl)
	handler := NewRideHandler(mockUC)

	riderID := uuid.New()
	rideID := uuid.New()
	c, rec := newBookingContext(http.MethodPatch, "/rides/"+rideID.String()+"/cancel", "", riderID, models.RoleRider)
	c.SetParamNames("rideID")
	c.SetParamValues(rideID.String())

	mockUC.EXPECT().
		CancelRide(gomock.Any(), rideID, riderID).
		Return(nil, apperrors.NotFound("ride not found"))

	err := handler.CancelRide(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
