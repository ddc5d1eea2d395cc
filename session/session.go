package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNoToken is returned when a device has not signed in.
var ErrNoToken = errors.New("session: no auth token")

// Session is the token state of one device.
type Session struct {
	deviceID string
	store    Store
}

func (s *Session) DeviceID() string { return s.deviceID }

func (s *Session) key(name string) string {
	return fmt.Sprintf("session:%s:%s", s.deviceID, name)
}

// Token returns the stored jwt, or "" when the device is signed out.
func (s *Session) Token(ctx context.Context) (string, error) {
	return s.get(ctx, "jwt_token")
}

func (s *Session) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("session: empty auth token")
	}
	return s.store.Set(ctx, s.key("jwt_token"), token)
}

// Start stores the auth token and mints the opaque session id the app must
// present as its bearer credential from now on.
func (s *Session) Start(ctx context.Context, token string) (string, error) {
	if err := s.SaveToken(ctx, token); err != nil {
		return "", err
	}
	sid := uuid.NewString()
	if err := s.store.Set(ctx, s.key("sid"), sid); err != nil {
		return "", err
	}
	return sid, nil
}

// Verify reports whether sid is the session id minted at the last sign-in.
func (s *Session) Verify(ctx context.Context, sid string) (bool, error) {
	want, err := s.get(ctx, "sid")
	if err != nil || want == "" || sid == "" {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(sid)) == 1, nil
}

// Active reports whether the device holds a session id.
func (s *Session) Active(ctx context.Context) (bool, error) {
	sid, err := s.get(ctx, "sid")
	return sid != "", err
}

// ClearToken signs the device out, dropping the auth token and the session id.
func (s *Session) ClearToken(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key("sid")); err != nil {
		return err
	}
	return s.store.Delete(ctx, s.key("jwt_token"))
}

// FCMToken returns the stored push token, or "" when none was registered.
func (s *Session) FCMToken(ctx context.Context) (string, error) {
	return s.get(ctx, "fcm_token")
}

func (s *Session) SaveFCMToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("session: empty fcm token")
	}
	return s.store.Set(ctx, s.key("fcm_token"), token)
}

// Claims decodes the stored token without verifying it.
func (s *Session) Claims(ctx context.Context) (Claims, error) {
	tok, err := s.Token(ctx)
	if err != nil {
		return Claims{}, err
	}
	if tok == "" {
		return Claims{}, ErrNoToken
	}
	return parseClaims(tok)
}

func (s *Session) get(ctx context.Context, name string) (string, error) {
	val, err := s.store.Get(ctx, s.key(name))
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return val, err
}
