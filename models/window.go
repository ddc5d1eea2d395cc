package models

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// InvalidRangeError is returned when a window does not start before it ends.
type InvalidRangeError struct {
	From  civil.Time
	Until civil.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid time range: %s must be before %s", e.From, e.Until)
}

// TimeWindow is a booking window on a single calendar date.
type TimeWindow struct {
	Date  civil.Date `json:"date"`
	From  civil.Time `json:"time_from"`
	Until civil.Time `json:"time_until"`
}

// NewTimeWindow builds a validated window.
func NewTimeWindow(date civil.Date, from, until civil.Time) (TimeWindow, error) {
	w := TimeWindow{Date: date, From: clock(from), Until: clock(until)}
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

// Validate checks the date and the from < until invariant.
func (w TimeWindow) Validate() error {
	if !w.Date.IsValid() {
		return fmt.Errorf("invalid date %q", w.Date)
	}
	if !w.From.IsValid() || !w.Until.IsValid() {
		return fmt.Errorf("invalid time of day in window %s-%s", w.From, w.Until)
	}
	return ValidateRange(w.From, w.Until)
}

// Wire returns the time_from and time_until strings sent to the booking service.
func (w TimeWindow) Wire() (string, string) {
	return SerializeDateAndTime(w.From, w.Date), SerializeDateAndTime(w.Until, w.Date)
}

// Start returns the window start in the given location.
func (w TimeWindow) Start(loc *time.Location) time.Time {
	return civil.DateTime{Date: w.Date, Time: clock(w.From)}.In(loc)
}

// ValidateRange fails with *InvalidRangeError when from >= until.
func ValidateRange(from, until civil.Time) error {
	if secondOfDay(from) >= secondOfDay(until) {
		return &InvalidRangeError{From: from, Until: until}
	}
	return nil
}

// SerializeDateAndTime renders YYYY-MM-DDTHH:MM:SS in local time, without a zone suffix.
// Sub-second precision is dropped.
func SerializeDateAndTime(t civil.Time, d civil.Date) string {
	return civil.DateTime{Date: d, Time: clock(t)}.String()
}

// ParseWireDateTime parses a date-time produced by SerializeDateAndTime. Server
// responses may carry a zone offset (RFC 3339); the wall clock value is kept.
func ParseWireDateTime(s string) (civil.DateTime, error) {
	s = strings.TrimSpace(s)
	if dt, err := civil.ParseDateTime(s); err == nil {
		return civil.DateTime{Date: dt.Date, Time: clock(dt.Time)}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return civil.DateTime{}, fmt.Errorf("parse date-time %q: %w", s, err)
	}
	return civil.DateTime{Date: civil.DateOf(t), Time: clock(civil.TimeOf(t))}, nil
}

// ParseClock parses HH:MM or HH:MM:SS.
func ParseClock(s string) (civil.Time, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ":") == 1 {
		s += ":00"
	}
	t, err := civil.ParseTime(s)
	if err != nil {
		return civil.Time{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return clock(t), nil
}

// WindowFromWire rebuilds a window from a time_from/time_until pair. Both ends
// must fall on the same date.
func WindowFromWire(from, until string) (TimeWindow, error) {
	start, err := ParseWireDateTime(from)
	if err != nil {
		return TimeWindow{}, err
	}
	end, err := ParseWireDateTime(until)
	if err != nil {
		return TimeWindow{}, err
	}
	if start.Date != end.Date {
		return TimeWindow{}, fmt.Errorf("window spans two dates: %s and %s", start.Date, end.Date)
	}
	return NewTimeWindow(start.Date, start.Time, end.Time)
}

func clock(t civil.Time) civil.Time {
	return civil.Time{Hour: t.Hour, Minute: t.Minute, Second: t.Second}
}

func secondOfDay(t civil.Time) int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}
