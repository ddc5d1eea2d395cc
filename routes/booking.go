package routes

import (
	"github.com/gin-gonic/gin"

	"bookit/handlers"
	"bookit/middleware"
)

// RegisterBookingRoutes registers booking and scanner endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	{
		bookings.Use(middleware.RequireSession(hb.Sessions))
		bookings.POST("", hb.BookHandler)
		bookings.GET("", hb.AllBookingsHandler)
		bookings.DELETE("/:id", hb.CancelHandler)
		bookings.PATCH("/:id", hb.RescheduleHandler)
	}
	api.POST("/verify", middleware.RequireSession(hb.Sessions), hb.VerifyHandler)
}
