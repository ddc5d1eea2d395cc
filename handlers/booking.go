package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookit/models"
	"bookit/services/booking"
	"bookit/utils"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

type bookInput struct {
	SpotID string `json:"spot_id" binding:"required"`
	windowInput
}

// BookHandler books a spot. A taken spot answers 409 with the spot the
// booking service reported, when it named one.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	logger := getLogger(c)

	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	window, err := in.window()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid time window", err.Error())
		return
	}

	status := h.Service.Book(c.Request.Context(), in.SpotID, window)
	if status.Succeeded() {
		c.JSON(http.StatusCreated, gin.H{"status": status.Kind})
		return
	}

	var rangeErr *models.InvalidRangeError
	if errors.As(status.Err, &rangeErr) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid time window", rangeErr.Error())
		return
	}

	code := http.StatusConflict
	var nameErr *booking.SpotNameError
	if status.Spot == nil && status.Err != nil && !errors.As(status.Err, &nameErr) {
		code = utils.RemoteStatus(status.Err)
	}
	details := ""
	if status.Err != nil {
		details = status.Err.Error()
	}
	logger.Info("Booking not placed",
		zap.String("spotID", in.SpotID),
		zap.Bool("conflictSpotKnown", status.Spot != nil),
		zap.Error(status.Err))
	c.JSON(code, gin.H{
		"status":  status.Kind,
		"spot":    status.Spot,
		"message": "Spot is not available",
		"details": details,
	})
}

// CancelHandler cancels a booking. The app refreshes its list either way, so
// a failure is reported but never blocks the flow.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	if err := h.Service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Cancellation failed", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// RescheduleHandler moves a booking to a new window.
func (h *BookingHandler) RescheduleHandler(c *gin.Context) {
	var in windowInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	window, err := in.window()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid time window", err.Error())
		return
	}

	updated, err := h.Service.Reschedule(c.Request.Context(), c.Param("id"), window)
	if err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Reschedule failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AllBookingsHandler lists every booking for staff.
func (h *BookingHandler) AllBookingsHandler(c *gin.Context) {
	page, count, err := pageQuery(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	list, err := h.Service.AllBookings(c.Request.Context(), page, count)
	if err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Failed to load bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, list)
}

// SpotBookingHandler returns the booking currently holding a spot.
func (h *BookingHandler) SpotBookingHandler(c *gin.Context) {
	info, err := h.Service.CurrentBookingForSpot(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Failed to load spot booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": info, "active": info.IsActive()})
}
