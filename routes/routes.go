package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bookit/config"
	"bookit/handlers"
	"bookit/middleware"
	"bookit/utils"
)

// RegisterAuthRoutes registers sign-in endpoints. They need a device but no
// session; a signed-in device must still show its session id to change its
// push token.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", hb.LoginHandler)
		auth.POST("/register", hb.RegisterHandler)
		auth.POST("/yandex", hb.YandexHandler)
		auth.PUT("/fcm-token", middleware.GuardSession(hb.Sessions), hb.FCMTokenHandler)
		auth.POST("/logout", middleware.RequireSession(hb.Sessions), hb.LogoutHandler)
	}
}

// RegisterCoworkingRoutes registers the coworking directory and floor plans.
func RegisterCoworkingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	coworkings := api.Group("/coworkings")
	{
		coworkings.Use(middleware.RequireSession(hb.Sessions))
		coworkings.GET("", hb.ListCoworkingsHandler)
		coworkings.GET("/:id", hb.GetCoworkingHandler)
		coworkings.GET("/:id/layout", hb.LayoutHandler)
		coworkings.GET("/:id/spots", hb.SpotsHandler)
	}
	api.GET("/spots/:id/booking", middleware.RequireSession(hb.Sessions), hb.SpotBookingHandler)
}

// RegisterProfileRoutes registers the signed-in user's profile and ledger.
func RegisterProfileRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	profile := api.Group("/profile")
	{
		profile.Use(middleware.RequireSession(hb.Sessions))
		profile.GET("", hb.ProfileHandler)
		profile.GET("/bookings", hb.ProfileBookingsHandler)
		profile.DELETE("/bookings/:id", hb.DeleteBookingHandler)
		profile.POST("/bookings/:id/reschedule", hb.ProfileRescheduleHandler)
	}
	api.PATCH("/users/:id", middleware.RequireSession(hb.Sessions), hb.ChangeUserInfoHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Redis || !status.Remote {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", utils.DeviceHeader, utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: !allowsAnyOrigin(corsOrigins()),
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.DeviceMiddleware())
	RegisterAuthRoutes(api, hb)
	RegisterCoworkingRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterProfileRoutes(api, hb)
}

func corsOrigins() []string {
	if origins := config.CORSOriginList(); len(origins) > 0 {
		return origins
	}
	return []string{"*"}
}

// Browsers reject credentialed responses for a wildcard origin.
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
