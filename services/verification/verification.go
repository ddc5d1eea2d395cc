package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookit/models"
	"bookit/remote"
)

// ErrBookingNotFound is returned when a scanned code matches no booking.
var ErrBookingNotFound = errors.New("booking not found")

type API interface {
	Booking(ctx context.Context, bookingID string) (remote.BookingCheckDTO, error)
}

// Service looks up scanned booking codes for staff.
type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

// CheckBooking resolves a scanned token to the booking, its user and spot.
func (s *Service) CheckBooking(ctx context.Context, token string) (models.BookingDetails, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.BookingDetails{}, ErrBookingNotFound
	}
	dto, err := s.api.Booking(ctx, token)
	if remote.IsNotFound(err) {
		return models.BookingDetails{}, ErrBookingNotFound
	}
	if err != nil {
		return models.BookingDetails{}, fmt.Errorf("check booking: %w", err)
	}
	return models.BookingDetails{
		ID:        dto.ID,
		TimeFrom:  dto.TimeFrom,
		TimeUntil: dto.TimeUntil,
		Status:    dto.Status,
		Options:   dto.Options,
		User: models.BookingUser{
			ID:        dto.User.ID,
			AvatarURL: dto.User.AvatarURL,
			FullName:  dto.User.FullName,
			Email:     dto.User.Email,
		},
		Spot: models.BookingSpot{ID: dto.Spot.ID, Name: dto.Spot.Name},
	}, nil
}
