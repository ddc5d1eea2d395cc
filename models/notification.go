package models

import "time"

// ReminderPayload is queued when a booking succeeds and pushed shortly before it starts.
type ReminderPayload struct {
	DeviceID  string    `json:"device_id"`
	SpotID    string    `json:"spot_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	StartsAt  time.Time `json:"starts_at"`
	CreatedAt time.Time `json:"created_at"`
}

// PushMessage is a single push notification to one device.
type PushMessage struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}
