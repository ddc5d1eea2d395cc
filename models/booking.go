package models

import "errors"

// InvalidBookingID is the id carried by a RescheduledBooking returned alongside an error.
const InvalidBookingID = "-1"

// Booking statuses reported by the booking service. Other values are passed through as-is.
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

// BookingStatusKind is the terminal state of a booking attempt.
type BookingStatusKind string

const (
	BookingSuccess  BookingStatusKind = "success"
	BookingConflict BookingStatusKind = "conflict"
)

// BookingStatus is the outcome of one booking attempt.
type BookingStatus struct {
	Kind BookingStatusKind
	// Spot is the conflicting spot reported by the server, nil when none could be identified.
	Spot *Spot
	// Err carries the underlying cause of a conflict without a spot.
	Err error
}

// ErrBookingConflict is matched by every conflict status returned from AsError.
var ErrBookingConflict = errors.New("booking conflict")

func BookingSucceeded() BookingStatus {
	return BookingStatus{Kind: BookingSuccess}
}

func BookingConflicted(spot *Spot, cause error) BookingStatus {
	return BookingStatus{Kind: BookingConflict, Spot: spot, Err: cause}
}

func (s BookingStatus) Succeeded() bool {
	return s.Kind == BookingSuccess
}

// FullBookingInfo is a booking as shown to staff and on a spot's detail card.
type FullBookingInfo struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Position  int     `json:"position"`
	Status    string  `json:"status"`
	Date      string  `json:"date"`
	TimeFrom  string  `json:"time_from"`
	TimeUntil string  `json:"time_until"`
	PhotoURL  *string `json:"photo_url,omitempty"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
}

// IsActive reports whether the booking has not ended yet.
func (b FullBookingInfo) IsActive() bool {
	return b.Status == StatusActive
}

// ProfileBooking is a user's own booking summary.
type ProfileBooking struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Address   string `json:"address"`
	TimeFrom  string `json:"time_from"`
	TimeUntil string `json:"time_until"`
	Status    string `json:"status"`
}

// RescheduledBooking is the booking returned by the service after a time change.
type RescheduledBooking struct {
	ID        string   `json:"id"`
	SpotID    string   `json:"spot_id"`
	SpotName  string   `json:"spot_name"`
	TimeFrom  string   `json:"time_from"`
	TimeUntil string   `json:"time_until"`
	Status    string   `json:"status"`
	Options   []string `json:"options"`
}

// InvalidRescheduledBooking is the record returned with a reschedule error.
func InvalidRescheduledBooking() RescheduledBooking {
	return RescheduledBooking{ID: InvalidBookingID}
}

// Valid reports whether the record came from a successful reschedule.
func (b RescheduledBooking) Valid() bool {
	return b.ID != "" && b.ID != InvalidBookingID
}

// BookingDetails is what staff see after scanning a booking code.
type BookingDetails struct {
	ID        string      `json:"id"`
	TimeFrom  string      `json:"time_from"`
	TimeUntil string      `json:"time_until"`
	Status    string      `json:"status"`
	Options   []string    `json:"options"`
	User      BookingUser `json:"user"`
	Spot      BookingSpot `json:"spot"`
}

type BookingUser struct {
	ID        string `json:"id"`
	AvatarURL string `json:"avatar_url"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
}

type BookingSpot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ConflictError describes a rejected booking attempt.
type ConflictError struct {
	Spot  *Spot
	Cause error
}

func (e *ConflictError) Error() string {
	switch {
	case e.Spot != nil:
		return "spot " + e.Spot.ID + " is unavailable for the requested window"
	case e.Cause != nil:
		return "booking unavailable: " + e.Cause.Error()
	}
	return "booking unavailable"
}

func (e *ConflictError) Unwrap() error { return e.Cause }

func (e *ConflictError) Is(target error) bool { return target == ErrBookingConflict }

// AsError returns nil on success and a *ConflictError otherwise.
func (s BookingStatus) AsError() error {
	if s.Succeeded() {
		return nil
	}
	return &ConflictError{Spot: s.Spot, Cause: s.Err}
}
