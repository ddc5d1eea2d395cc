package handlers

import (
	"github.com/gin-gonic/gin"

	"bookit/session"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Sessions *session.Manager

	// Auth endpoints
	LoginHandler    gin.HandlerFunc
	RegisterHandler gin.HandlerFunc
	YandexHandler   gin.HandlerFunc
	LogoutHandler   gin.HandlerFunc
	FCMTokenHandler gin.HandlerFunc

	// Coworking endpoints
	ListCoworkingsHandler gin.HandlerFunc
	GetCoworkingHandler   gin.HandlerFunc
	LayoutHandler         gin.HandlerFunc
	SpotsHandler          gin.HandlerFunc

	// Booking endpoints
	BookHandler        gin.HandlerFunc
	CancelHandler      gin.HandlerFunc
	RescheduleHandler  gin.HandlerFunc
	AllBookingsHandler gin.HandlerFunc
	SpotBookingHandler gin.HandlerFunc

	// Profile endpoints
	ProfileHandler           gin.HandlerFunc
	ProfileBookingsHandler   gin.HandlerFunc
	DeleteBookingHandler     gin.HandlerFunc
	ProfileRescheduleHandler gin.HandlerFunc
	ChangeUserInfoHandler    gin.HandlerFunc

	// Scanner
	VerifyHandler gin.HandlerFunc
}
