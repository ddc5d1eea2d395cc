package notification

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"bookit/models"
	"bookit/session"
)

// ErrNoPushToken is returned when a device never registered a push token.
var ErrNoPushToken = errors.New("device has no push token")

// Pusher delivers one push message.
type Pusher interface {
	Send(ctx context.Context, msg models.PushMessage) error
}

// Messenger is the part of the FCM client used here. *messaging.Client satisfies it.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMPusher sends through Firebase Cloud Messaging.
type FCMPusher struct {
	client Messenger
	logger *zap.Logger
}

func NewFCMPusher(client Messenger, logger *zap.Logger) *FCMPusher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FCMPusher{client: client, logger: logger}
}

func (p *FCMPusher) Send(ctx context.Context, msg models.PushMessage) error {
	if msg.Token == "" {
		return ErrNoPushToken
	}
	id, err := p.client.Send(ctx, &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "booking_reminders",
				Sound:     "default",
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	p.logger.Debug("Push sent", zap.String("messageID", id))
	return nil
}

// NoopPusher logs pushes instead of sending them. Used when Firebase is not configured.
type NoopPusher struct {
	logger *zap.Logger
}

func NewNoopPusher(logger *zap.Logger) *NoopPusher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopPusher{logger: logger}
}

func (p *NoopPusher) Send(_ context.Context, msg models.PushMessage) error {
	p.logger.Info("Push disabled, dropping message", zap.String("title", msg.Title))
	return nil
}

// ReminderService turns a queued reminder into a push to the booking device.
type ReminderService struct {
	pusher   Pusher
	sessions *session.Manager
}

func NewReminderService(pusher Pusher, sessions *session.Manager) *ReminderService {
	return &ReminderService{pusher: pusher, sessions: sessions}
}

// SendReminder pushes the reminder to the device's current push token.
func (s *ReminderService) SendReminder(ctx context.Context, p models.ReminderPayload) error {
	token, err := s.sessions.For(p.DeviceID).FCMToken(ctx)
	if err != nil {
		return fmt.Errorf("read push token of device %s: %w", p.DeviceID, err)
	}
	if token == "" {
		return ErrNoPushToken
	}
	return s.pusher.Send(ctx, models.PushMessage{
		Token: token,
		Title: p.Title,
		Body:  p.Body,
		Data: map[string]string{
			"type":     "booking_reminder",
			"spotId":   p.SpotID,
			"startsAt": p.StartsAt.Format("2006-01-02T15:04:05"),
		},
	})
}
