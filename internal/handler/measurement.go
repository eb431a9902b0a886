package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type MeasurementHandler struct {
	measurements MeasurementAPI
}

func NewMeasurementHandler(measurements MeasurementAPI) *MeasurementHandler {
	return &MeasurementHandler{measurements: measurements}
}

// GetProfile returns the customer with their active measurement.
// Access depends on the caller's role.
func (h *MeasurementHandler) GetProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetCustomerProfile")

	auth, ok := callerOrAbort(c)
	if !ok {
		return
	}
	customerID, ok := pathID(c, ctx, "customerId")
	if !ok {
		return
	}

	profile, err := h.measurements.GetProfile(ctx, auth, customerID)
	if err != nil {
		respondError(c, ctx, "Get customer profile", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *MeasurementHandler) GetLatest(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetLatestMeasurement")

	auth, ok := callerOrAbort(c)
	if !ok {
		return
	}
	customerID, ok := pathID(c, ctx, "customerId")
	if !ok {
		return
	}

	measurement, err := h.measurements.GetLatest(ctx, auth, customerID)
	if err != nil {
		respondError(c, ctx, "Get latest measurement", err)
		return
	}

	c.JSON(http.StatusOK, measurement)
}

// Add records a new active measurement, deactivating the previous one
func (h *MeasurementHandler) Add(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "AddMeasurement")

	auth, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req dto.MeasurementRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	measurement, err := h.measurements.Add(ctx, auth, &req)
	if err != nil {
		respondError(c, ctx, "Add measurement", err)
		return
	}

	logger.InfoWithContext(ctx, "Measurement recorded").
		Uint("customer_id", req.CustomerID).
		Uint("recorded_by", auth.UserID).
		Log()

	c.JSON(http.StatusCreated, measurement)
}
