package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookit/session"
	"bookit/utils"
)

// RequireSession rejects requests that do not carry the device's session id
// as a bearer credential. Expired tokens are cleared so the app is sent back
// to login. Tokens are not verified here; the booking service does that on
// every call.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return checkSession(sessions, true)
}

// GuardSession lets signed-out devices through but holds signed-in ones to
// their session id, so a bare device id cannot act on someone's session.
func GuardSession(sessions *session.Manager) gin.HandlerFunc {
	return checkSession(sessions, false)
}

func checkSession(sessions *session.Manager, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := loggerFrom(c)
		ctx := c.Request.Context()

		sess, err := sessions.FromContext(ctx)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Missing device id", err.Error())
			return
		}

		if !required {
			active, err := sess.Active(ctx)
			if err != nil {
				logger.Error("Failed to read session", zap.String("deviceID", sess.DeviceID()), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Session unavailable", "")
				return
			}
			if !active {
				c.Next()
				return
			}
		}

		sid := bearer(c)
		if sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Not signed in"})
			return
		}
		ok, err := sess.Verify(ctx, sid)
		if err != nil {
			logger.Error("Failed to read session", zap.String("deviceID", sess.DeviceID()), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Session unavailable", "")
			return
		}
		if !ok {
			logger.Warn("Session id does not match device", zap.String("deviceID", sess.DeviceID()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Insufficient authorization"})
			return
		}

		token, err := sess.Token(ctx)
		if err != nil {
			logger.Error("Failed to read session", zap.String("deviceID", sess.DeviceID()), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Session unavailable", "")
			return
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Not signed in"})
			return
		}

		claims, err := sess.Claims(ctx)
		if err != nil {
			// Opaque token; let the booking service decide.
			c.Next()
			return
		}
		if claims.Expired(time.Now()) {
			if err := sess.ClearToken(ctx); err != nil {
				logger.Warn("Failed to clear expired token", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Message: "Session expired",
				Details: "Sign in again.",
			})
			return
		}
		if claims.Subject != "" {
			c.Set("userID", claims.Subject)
		}
		c.Next()
	}
}

func bearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
