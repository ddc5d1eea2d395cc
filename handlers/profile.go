package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookit/models"
	"bookit/utils"
)

// ProfileService is the part of *profile.Service used by the profile endpoints.
type ProfileService interface {
	Profile(ctx context.Context) (models.UserProfile, error)
	ListBookings(ctx context.Context, page, pageSize int) ([]models.ProfileBooking, error)
	DeleteBooking(ctx context.Context, bookingID string) ([]models.ProfileBooking, error)
	Reschedule(ctx context.Context, bookingID string, window models.TimeWindow) (models.RescheduledBooking, []models.ProfileBooking, error)
	ChangeUserInfo(ctx context.Context, userID, email, fullName string) error
	PageSize() int
}

type ProfileHandler struct {
	Service ProfileService
}

func NewProfileHandler(svc ProfileService) *ProfileHandler {
	return &ProfileHandler{Service: svc}
}

func (h *ProfileHandler) ProfileHandler(c *gin.Context) {
	p, err := h.Service.Profile(c.Request.Context())
	if err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Failed to load profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListBookingsHandler returns one page of the user's bookings. has_more stays
// true until a short page comes back.
func (h *ProfileHandler) ListBookingsHandler(c *gin.Context) {
	page, count, err := pageQuery(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	list, err := h.Service.ListBookings(c.Request.Context(), page, count)
	if err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Failed to load bookings", err.Error())
		return
	}
	size := count
	if size <= 0 {
		size = h.Service.PageSize()
	}
	c.JSON(http.StatusOK, gin.H{
		"page":      page,
		"bookings":  list,
		"has_more":  len(list) >= size,
		"next_page": page + 1,
	})
}

func (h *ProfileHandler) DeleteBookingHandler(c *gin.Context) {
	list, err := h.Service.DeleteBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Cancellation failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

func (h *ProfileHandler) RescheduleHandler(c *gin.Context) {
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
	updated, list, err := h.Service.Reschedule(c.Request.Context(), c.Param("id"), window)
	if err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Reschedule failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": updated, "bookings": list})
}

func (h *ProfileHandler) ChangeUserInfoHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := h.Service.ChangeUserInfo(c.Request.Context(), c.Param("id"), req.Email, req.FullName); err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Failed to update user", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
