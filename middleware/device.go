package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookit/session"
	"bookit/utils"
)

// DeviceMiddleware requires the X-Device-ID header and binds the device to the
// request context so its session signs remote calls.
func DeviceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := strings.TrimSpace(c.GetHeader(utils.DeviceHeader))
		if deviceID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{
				Message: "Missing device id",
				Details: utils.DeviceHeader + " header is required",
			})
			return
		}
		c.Set("deviceID", deviceID)
		c.Request = c.Request.WithContext(session.WithDevice(c.Request.Context(), deviceID))
		c.Next()
	}
}
