package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bookit/models"
	"bookit/remote"
	"bookit/services/storage"
	"bookit/session"
)

// API is the part of the booking service client used for sign-in.
type API interface {
	Login(ctx context.Context, req remote.LoginRequest) (remote.TokenResponse, error)
	SignInWithYandex(ctx context.Context, req remote.YandexRequest) (remote.TokenResponse, error)
	Register(ctx context.Context, req remote.RegisterRequest) error
	RegisterDevice(ctx context.Context, req remote.DeviceRequest) error
}

// ReminderCanceller drops the booking reminders queued for a device.
type ReminderCanceller interface {
	CancelDeviceReminders(ctx context.Context, deviceID string) error
}

// ErrInvalidInput is returned for missing credentials.
var ErrInvalidInput = errors.New("invalid input")

// Service signs devices in and out.
type Service struct {
	api        API
	sessions   *session.Manager
	storage    storage.StorageService
	reminders  ReminderCanceller
	deviceType string
	logger     *zap.Logger
}

func NewService(api API, sessions *session.Manager, store storage.StorageService, reminders ReminderCanceller, deviceType string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deviceType == "" {
		deviceType = "android"
	}
	return &Service{
		api:        api,
		sessions:   sessions,
		storage:    store,
		reminders:  reminders,
		deviceType: deviceType,
		logger:     logger,
	}
}

// Login signs the device in and registers its push token if it has one. The
// returned session id is the app's bearer credential.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	sess, err := s.sessions.FromContext(ctx)
	if err != nil {
		return "", err
	}
	resp, err := s.api.Login(ctx, remote.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return s.startSession(ctx, sess, resp.Token)
}

// SignInWithYandex exchanges a Yandex OAuth token for a session.
func (s *Service) SignInWithYandex(ctx context.Context, oauthToken string) (string, error) {
	if strings.TrimSpace(oauthToken) == "" {
		return "", fmt.Errorf("%w: oauth token is required", ErrInvalidInput)
	}
	sess, err := s.sessions.FromContext(ctx)
	if err != nil {
		return "", err
	}
	resp, err := s.api.SignInWithYandex(ctx, remote.YandexRequest{OAuthToken: oauthToken})
	if err != nil {
		return "", fmt.Errorf("yandex sign-in: %w", err)
	}
	return s.startSession(ctx, sess, resp.Token)
}

func (s *Service) startSession(ctx context.Context, sess *session.Session, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("sign-in: %w", &remote.DeserializationError{Path: "/auth", Err: errors.New("empty token")})
	}
	sid, err := sess.Start(ctx, token)
	if err != nil {
		return "", err
	}
	s.registerDevice(ctx, sess)
	return sid, nil
}

// registerDevice sends the stored push token. Failures only get logged.
func (s *Service) registerDevice(ctx context.Context, sess *session.Session) {
	fcm, err := sess.FCMToken(ctx)
	if err != nil || fcm == "" {
		return
	}
	if err := s.api.RegisterDevice(ctx, remote.DeviceRequest{Token: fcm, DeviceType: s.deviceType}); err != nil {
		s.logger.Warn("Failed to register device for push",
			zap.String("deviceID", sess.DeviceID()),
			zap.Error(err))
	}
}

// Register runs upload-avatar, create-account and login in order. A failed
// avatar upload is tolerated and the account is created without one. Nothing
// is rolled back when a later step fails.
func (s *Service) Register(ctx context.Context, in models.RegisterInput) (string, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Email == "" || in.Password == "" || in.FullName == "" {
		return "", fmt.Errorf("%w: email, full name and password are required", ErrInvalidInput)
	}

	var avatarURL *string
	if in.Avatar != nil && len(in.Avatar.Data) > 0 && s.storage != nil {
		url, err := s.storage.UploadFile(ctx, *in.Avatar)
		if err != nil {
			s.logger.Warn("Avatar upload failed, registering without avatar",
				zap.String("step", StepUploadAvatar),
				zap.String("email", in.Email),
				zap.Error(err))
		} else {
			avatarURL = &url
		}
	}
	orphan := ""
	if avatarURL != nil {
		orphan = *avatarURL
	}

	err := s.api.Register(ctx, remote.RegisterRequest{
		Email:      in.Email,
		FullName:   in.FullName,
		Password:   in.Password,
		IsBusiness: in.IsBusiness,
		AvatarURL:  avatarURL,
	})
	if err != nil {
		return "", &RegistrationError{Step: StepCreateAccount, AvatarURL: orphan, Err: err}
	}

	sid, err := s.Login(ctx, in.Email, in.Password)
	if err != nil {
		// The account exists and references the avatar; nothing is orphaned.
		return "", &RegistrationError{Step: StepLogin, Err: err}
	}
	return sid, nil
}

// Logout forgets the device's auth token and session id and drops its queued
// booking reminders. The push token is kept for the next sign-in.
func (s *Service) Logout(ctx context.Context) error {
	sess, err := s.sessions.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := sess.ClearToken(ctx); err != nil {
		return err
	}
	if s.reminders != nil {
		if err := s.reminders.CancelDeviceReminders(ctx, sess.DeviceID()); err != nil {
			s.logger.Warn("Failed to drop reminders on logout",
				zap.String("deviceID", sess.DeviceID()),
				zap.Error(err))
		}
	}
	return nil
}

// SaveFCMToken stores the device push token and, when signed in, registers it.
func (s *Service) SaveFCMToken(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	sess, err := s.sessions.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := sess.SaveFCMToken(ctx, token); err != nil {
		return err
	}
	if jwt, err := sess.Token(ctx); err == nil && jwt != "" {
		s.registerDevice(ctx, sess)
	}
	return nil
}
