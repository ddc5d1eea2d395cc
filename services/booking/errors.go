package booking

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"bookit/models"
)

// ConflictError is returned by BookingStatus.AsError for rejected bookings.
type ConflictError = models.ConflictError

// SpotNameError is returned when a spot display name does not encode a position.
type SpotNameError struct {
	SpotID string
	Name   string
}

func (e *SpotNameError) Error() string {
	return fmt.Sprintf("spot %s: name %q does not match <prefix><number>", e.SpotID, e.Name)
}

// ParseSpotPosition decodes the position from a display name made of one
// non-digit prefix character followed by digits, e.g. "A12" is 12.
func ParseSpotPosition(name string) (int, error) {
	prefix, size := utf8.DecodeRuneInString(name)
	if prefix == utf8.RuneError || unicode.IsDigit(prefix) || unicode.IsSpace(prefix) {
		return 0, &SpotNameError{Name: name}
	}
	digits := name[size:]
	if digits == "" {
		return 0, &SpotNameError{Name: name}
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, &SpotNameError{Name: name}
		}
	}
	pos, err := strconv.Atoi(digits)
	if err != nil || pos < 1 {
		return 0, &SpotNameError{Name: name}
	}
	return pos, nil
}

// spotPosition prefers the structured position and falls back to the name.
func spotPosition(id, name string, position *int) (int, error) {
	if position != nil && *position > 0 {
		return *position, nil
	}
	pos, err := ParseSpotPosition(name)
	if err != nil {
		return 0, &SpotNameError{SpotID: id, Name: name}
	}
	return pos, nil
}
