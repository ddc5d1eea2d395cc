package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookit/models"
	"bookit/services/auth"
	"bookit/utils"
)

const maxAvatarSize = 5 << 20

// AuthService is the part of *auth.Service used by the auth endpoints.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	SignInWithYandex(ctx context.Context, oauthToken string) (string, error)
	Register(ctx context.Context, in models.RegisterInput) (string, error)
	Logout(ctx context.Context) error
	SaveFCMToken(ctx context.Context, token string) error
}

type AuthHandler struct {
	Service AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// LoginHandler signs the device in with email and password. The response
// carries the session id the app sends as its bearer credential.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	sid, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.Error(err))
		h.fail(c, "Login failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed in", "session_id": sid})
}

// YandexHandler signs the device in with a Yandex OAuth token.
func (h *AuthHandler) YandexHandler(c *gin.Context) {
	var req struct {
		OAuthToken string `json:"oauth_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	sid, err := h.Service.SignInWithYandex(c.Request.Context(), req.OAuthToken)
	if err != nil {
		getLogger(c).Warn("Yandex sign-in failed", zap.Error(err))
		h.fail(c, "Yandex sign-in failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed in", "session_id": sid})
}

// RegisterHandler creates an account from a multipart form with an optional
// "avatar" file, then signs the device in.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	in := models.RegisterInput{
		Email:    c.PostForm("email"),
		FullName: c.PostForm("full_name"),
		Password: c.PostForm("password"),
	}
	if raw := c.PostForm("is_business"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "is_business must be a boolean")
			return
		}
		in.IsBusiness = b
	}

	if fileHeader, err := c.FormFile("avatar"); err == nil {
		if fileHeader.Size > maxAvatarSize {
			utils.JSONError(c, http.StatusRequestEntityTooLarge, "Avatar too large", fmt.Sprintf("limit is %d bytes", maxAvatarSize))
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid avatar", err.Error())
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, maxAvatarSize))
		f.Close()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid avatar", err.Error())
			return
		}
		in.Avatar = &models.Upload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	sid, err := h.Service.Register(c.Request.Context(), in)
	if err != nil {
		var regErr *auth.RegistrationError
		if errors.As(err, &regErr) {
			logger.Error("Registration failed",
				zap.String("step", regErr.Step),
				zap.String("orphanedAvatar", regErr.AvatarURL),
				zap.Error(regErr.Err))
		}
		h.fail(c, "Registration failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registered", "session_id": sid})
}

// LogoutHandler forgets the device's auth token.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.Service.Logout(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Logout failed", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// FCMTokenHandler stores the device push token.
func (h *AuthHandler) FCMTokenHandler(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := h.Service.SaveFCMToken(c.Request.Context(), req.Token); err != nil {
		h.fail(c, "Failed to save push token", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) fail(c *gin.Context, message string, err error) {
	if errors.Is(err, auth.ErrInvalidInput) {
		utils.JSONError(c, http.StatusBadRequest, message, err.Error())
		return
	}
	utils.JSONError(c, utils.RemoteStatus(err), message, err.Error())
}
