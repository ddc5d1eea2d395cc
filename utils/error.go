package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookit/remote"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details})
}

// RemoteStatus maps a booking service failure to the status returned to the app.
// Client errors from the booking service pass through and other remote
// failures are a bad gateway. Errors that never reached the booking service
// are a 500.
func RemoteStatus(err error) int {
	var statusErr *remote.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code >= 400 && statusErr.Code < 500 {
			return statusErr.Code
		}
		return http.StatusBadGateway
	}
	var transportErr *remote.TransportError
	if errors.As(err, &transportErr) {
		return http.StatusServiceUnavailable
	}
	var decodeErr *remote.DeserializationError
	if errors.As(err, &decodeErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
