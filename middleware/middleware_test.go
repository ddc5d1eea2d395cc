package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/session"
	"bookit/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDeviceMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(DeviceMiddleware())
	r.GET("/x", func(c *gin.Context) {
		id, ok := session.DeviceFrom(c.Request.Context())
		assert.True(t, ok)
		c.String(http.StatusOK, id)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(utils.DeviceHeader, " dev-1 ")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dev-1", w.Body.String())
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func TestRequireSession(t *testing.T) {
	store := session.NewMemoryStore()
	sessions := session.NewManager(store)

	r := gin.New()
	r.Use(DeviceMiddleware(), RequireSession(sessions))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userID"))
	})

	request := func(sid string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(utils.DeviceHeader, "dev-1")
		if sid != "" {
			req.Header.Set("Authorization", "Bearer "+sid)
		}
		return serve(r, req)
	}
	ctx := context.Background()

	assert.Equal(t, http.StatusUnauthorized, request("").Code)

	sid, err := sessions.For("dev-1").Start(ctx, signed(t, jwt.MapClaims{
		"sub": "u-1",
		"exp": float64(time.Now().Add(time.Hour).Unix()),
	}))
	require.NoError(t, err)
	w := request(sid)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, request("").Code, "device id alone is not a credential")
	assert.Equal(t, http.StatusUnauthorized, request("someone-else").Code)

	require.NoError(t, sessions.For("dev-1").SaveToken(ctx, signed(t, jwt.MapClaims{
		"sub": "u-1",
		"exp": float64(time.Now().Add(-time.Hour).Unix()),
	})))
	assert.Equal(t, http.StatusUnauthorized, request(sid).Code)
	tok, err := sessions.For("dev-1").Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok, "expired token is cleared")
	assert.Equal(t, http.StatusUnauthorized, request(sid).Code, "session id dies with the token")

	sid, err = sessions.For("dev-1").Start(ctx, "opaque-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, request(sid).Code)
}

func TestGuardSession(t *testing.T) {
	sessions := session.NewManager(session.NewMemoryStore())

	r := gin.New()
	r.Use(DeviceMiddleware(), GuardSession(sessions))
	r.PUT("/fcm", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	request := func(sid string) int {
		req := httptest.NewRequest(http.MethodPut, "/fcm", nil)
		req.Header.Set(utils.DeviceHeader, "dev-1")
		if sid != "" {
			req.Header.Set("Authorization", "Bearer "+sid)
		}
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusNoContent, request(""), "signed-out devices pass")

	sid, err := sessions.For("dev-1").Start(context.Background(), "jwt")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, request(""))
	assert.Equal(t, http.StatusUnauthorized, request("wrong"))
	assert.Equal(t, http.StatusNoContent, request(sid))
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	from := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		return serve(r, req).Code
	}
	assert.Equal(t, http.StatusOK, from("1.1.1.1"))
	assert.Equal(t, http.StatusOK, from("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, from("1.1.1.1"))
	assert.Equal(t, http.StatusOK, from("2.2.2.2"))
}

func TestRequestLoggerSetsID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(nil))
	r.GET("/x", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.Status(http.StatusNoContent)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Header().Get(utils.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(utils.RequestIDHeader, "abc")
	w = serve(r, req)
	assert.Equal(t, "abc", w.Header().Get(utils.RequestIDHeader))
}

func TestGetClientIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "9.9.9.9:1234"
	assert.Equal(t, "9.9.9.9", getClientIP(c))

	c.Request.Header.Set("X-Real-IP", "8.8.8.8")
	assert.Equal(t, "8.8.8.8", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "7.7.7.7, 6.6.6.6")
	assert.Equal(t, "7.7.7.7", getClientIP(c))
}
