package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookit/models"
	"bookit/services/verification"
	"bookit/utils"
)

// BookingChecker is the part of *verification.Service used by the scanner endpoint.
type BookingChecker interface {
	CheckBooking(ctx context.Context, token string) (models.BookingDetails, error)
}

type VerifyHandler struct {
	Checker   BookingChecker
	Debouncer *verification.Debouncer
}

func NewVerifyHandler(checker BookingChecker, debouncer *verification.Debouncer) *VerifyHandler {
	return &VerifyHandler{Checker: checker, Debouncer: debouncer}
}

// VerifyHandler checks a scanned booking code. The same code from the same
// scanner inside the debounce window is ignored with 204.
func (h *VerifyHandler) VerifyHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	scanner := c.GetString("deviceID")
	if h.Debouncer != nil && !h.Debouncer.Allow(scanner, req.Code) {
		logger.Debug("Duplicate scan ignored", zap.String("scanner", scanner))
		c.Status(http.StatusNoContent)
		return
	}

	details, err := h.Checker.CheckBooking(c.Request.Context(), req.Code)
	if errors.Is(err, verification.ErrBookingNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Verification failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, details)
}
