package session

import (
	"context"
	"errors"
)

// ErrNoDevice is returned when a request context carries no device id.
var ErrNoDevice = errors.New("session: no device id in context")

type deviceKey struct{}

// WithDevice binds a device id to ctx.
func WithDevice(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceKey{}, deviceID)
}

// DeviceFrom returns the device id bound to ctx.
func DeviceFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(deviceKey{}).(string)
	return id, ok && id != ""
}

// Manager hands out per-device sessions backed by one Store.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) For(deviceID string) *Session {
	return &Session{deviceID: deviceID, store: m.store}
}

// FromContext returns the session of the device bound to ctx.
func (m *Manager) FromContext(ctx context.Context) (*Session, error) {
	id, ok := DeviceFrom(ctx)
	if !ok {
		return nil, ErrNoDevice
	}
	return m.For(id), nil
}

// Token returns the auth token of the device bound to ctx. Requests without a
// device go out unsigned.
func (m *Manager) Token(ctx context.Context) (string, error) {
	s, err := m.FromContext(ctx)
	if errors.Is(err, ErrNoDevice) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.Token(ctx)
}
