package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bookit/models"
	"bookit/remote"
)

// FetchSpots returns the spots of a coworking for a window in server order.
// Spots with no position and an unparseable name are left out. On failure the
// slice is empty, never nil, and the error says why.
func (s *DefaultBookingService) FetchSpots(ctx context.Context, coworkingID string, window models.TimeWindow) ([]models.Spot, error) {
	if err := window.Validate(); err != nil {
		return []models.Spot{}, err
	}
	from, until := window.Wire()
	dtos, err := s.API.CoworkingSpots(ctx, coworkingID, from, until)
	if err != nil {
		s.Logger.Warn("Failed to fetch spots", zap.String("coworkingID", coworkingID), zap.Error(err))
		return []models.Spot{}, fmt.Errorf("fetch spots of coworking %s: %w", coworkingID, err)
	}

	spots := make([]models.Spot, 0, len(dtos))
	for _, d := range dtos {
		pos, err := spotPosition(d.ID, d.Name, d.Position)
		if err != nil {
			s.Logger.Warn("Skipping spot without a floor-plan position",
				zap.String("coworkingID", coworkingID),
				zap.Error(err))
			continue
		}
		capacity, _ := models.CapacityForSeats(d.Capacity)
		spots = append(spots, models.Spot{
			ID:        d.ID,
			Name:      d.Name,
			Position:  pos,
			Capacity:  capacity,
			Available: d.Available,
		})
	}
	return spots, nil
}

// CurrentBookingForSpot returns the booking currently holding a spot.
func (s *DefaultBookingService) CurrentBookingForSpot(ctx context.Context, spotID string) (models.FullBookingInfo, error) {
	dto, err := s.API.SpotBooking(ctx, spotID)
	if err != nil {
		return models.FullBookingInfo{}, fmt.Errorf("booking of spot %s: %w", spotID, err)
	}
	return fullBookingInfo(dto), nil
}

// fullBookingInfo splits the wire date-times into a date and two clock times.
// Values the parser does not understand are passed through untouched.
func fullBookingInfo(d remote.FullBookingDTO) models.FullBookingInfo {
	info := models.FullBookingInfo{
		ID:        d.ID,
		UserID:    d.UserID,
		Position:  d.Position,
		Status:    d.Status,
		TimeFrom:  d.TimeFrom,
		TimeUntil: d.TimeUntil,
		PhotoURL:  d.AvatarURL,
		Name:      d.FullName,
		Email:     d.Email,
	}
	if from, err := models.ParseWireDateTime(d.TimeFrom); err == nil {
		info.Date = from.Date.String()
		info.TimeFrom = clockString(from.Time.Hour, from.Time.Minute)
	}
	if until, err := models.ParseWireDateTime(d.TimeUntil); err == nil {
		info.TimeUntil = clockString(until.Time.Hour, until.Time.Minute)
	}
	return info
}

func clockString(h, m int) string {
	return fmt.Sprintf("%02d:%02d", h, m)
}
