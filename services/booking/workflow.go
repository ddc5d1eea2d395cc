package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bookit/models"
	"bookit/remote"
	"bookit/session"
)

// Book asks the booking service for the spot. Every attempt ends in exactly one
// status: Success, Conflict with the offending spot, or Conflict without one
// carrying the cause.
func (s *DefaultBookingService) Book(ctx context.Context, spotID string, window models.TimeWindow) models.BookingStatus {
	if err := window.Validate(); err != nil {
		return models.BookingConflicted(nil, err)
	}

	from, until := window.Wire()
	err := s.API.Book(ctx, remote.BookRequest{SpotID: spotID, TimeFrom: from, TimeUntil: until})
	if err == nil {
		s.scheduleReminder(ctx, spotID, window)
		return models.BookingSucceeded()
	}

	var statusErr *remote.StatusError
	if !errors.As(err, &statusErr) {
		s.Logger.Warn("Booking request failed", zap.String("spotID", spotID), zap.Error(err))
		return models.BookingConflicted(nil, err)
	}

	spot, cause := conflictSpot(statusErr)
	if cause != nil {
		s.Logger.Info("Booking rejected without a usable spot",
			zap.String("spotID", spotID),
			zap.Int("status", statusErr.Code),
			zap.Error(cause))
		return models.BookingConflicted(nil, cause)
	}
	s.Logger.Info("Booking rejected",
		zap.String("spotID", spotID),
		zap.String("conflictSpotID", spot.ID),
		zap.Int("position", spot.Position))
	return models.BookingConflicted(spot, nil)
}

// conflictSpot reads {"spot":{"id","name"[,"position"]}} from a rejected booking.
func conflictSpot(statusErr *remote.StatusError) (*models.Spot, error) {
	if len(statusErr.Body) == 0 {
		return nil, statusErr
	}
	var body remote.ConflictBody
	if err := json.Unmarshal(statusErr.Body, &body); err != nil || body.Spot == nil || body.Spot.ID == "" {
		return nil, statusErr
	}
	pos, err := spotPosition(body.Spot.ID, body.Spot.Name, body.Spot.Position)
	if err != nil {
		return nil, err
	}
	return &models.Spot{
		ID:        body.Spot.ID,
		Name:      body.Spot.Name,
		Position:  pos,
		Available: true,
	}, nil
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, spotID string, window models.TimeWindow) {
	if s.Reminders == nil {
		return
	}
	deviceID, ok := session.DeviceFrom(ctx)
	if !ok {
		return
	}
	if err := s.Reminders.ScheduleReminder(ctx, deviceID, spotID, window); err != nil {
		s.Logger.Warn("Failed to schedule booking reminder", zap.String("spotID", spotID), zap.Error(err))
	}
}

// heldBooking is the spot and window a booking holds before it changes.
type heldBooking struct {
	spotID string
	window models.TimeWindow
}

// lookupHeld reads the booking so its reminder can be found later. It is
// skipped when nothing could be queued for this device.
func (s *DefaultBookingService) lookupHeld(ctx context.Context, bookingID string) (heldBooking, bool) {
	if s.Reminders == nil {
		return heldBooking{}, false
	}
	if _, ok := session.DeviceFrom(ctx); !ok {
		return heldBooking{}, false
	}
	dto, err := s.API.Booking(ctx, bookingID)
	if err != nil {
		s.Logger.Warn("Failed to look up booking, its reminder stays queued",
			zap.String("bookingID", bookingID),
			zap.Error(err))
		return heldBooking{}, false
	}
	window, err := models.WindowFromWire(dto.TimeFrom, dto.TimeUntil)
	if err != nil || dto.Spot.ID == "" {
		s.Logger.Warn("Booking has no usable window, its reminder stays queued",
			zap.String("bookingID", bookingID),
			zap.Error(err))
		return heldBooking{}, false
	}
	return heldBooking{spotID: dto.Spot.ID, window: window}, true
}

func (s *DefaultBookingService) cancelReminder(ctx context.Context, held heldBooking) {
	deviceID, ok := session.DeviceFrom(ctx)
	if !ok {
		return
	}
	if err := s.Reminders.CancelReminder(ctx, deviceID, held.spotID, held.window); err != nil {
		s.Logger.Warn("Failed to cancel booking reminder", zap.String("spotID", held.spotID), zap.Error(err))
	}
}

// Cancel deletes a booking and the reminder queued for it. Failures are
// logged and returned; callers refresh their list either way.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string) error {
	held, found := s.lookupHeld(ctx, bookingID)
	if err := s.API.CancelBooking(ctx, bookingID); err != nil {
		s.Logger.Error("Failed to cancel booking", zap.String("bookingID", bookingID), zap.Error(err))
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	if found {
		s.cancelReminder(ctx, held)
	}
	return nil
}

// Reschedule moves a booking, and its reminder, to a new window. On failure
// the returned record has models.InvalidBookingID and the error carries the
// cause.
func (s *DefaultBookingService) Reschedule(ctx context.Context, bookingID string, window models.TimeWindow) (models.RescheduledBooking, error) {
	if err := window.Validate(); err != nil {
		return models.InvalidRescheduledBooking(), err
	}
	held, found := s.lookupHeld(ctx, bookingID)
	from, until := window.Wire()
	dto, err := s.API.RescheduleBooking(ctx, bookingID, remote.RescheduleRequest{TimeFrom: from, TimeUntil: until})
	if err != nil {
		s.Logger.Error("Failed to reschedule booking", zap.String("bookingID", bookingID), zap.Error(err))
		return models.InvalidRescheduledBooking(), fmt.Errorf("reschedule booking %s: %w", bookingID, err)
	}
	spotID := dto.Spot.ID
	if found {
		s.cancelReminder(ctx, held)
		if spotID == "" {
			spotID = held.spotID
		}
	}
	if spotID != "" {
		s.scheduleReminder(ctx, spotID, window)
	}
	return models.RescheduledBooking{
		ID:        dto.ID,
		SpotID:    dto.Spot.ID,
		SpotName:  dto.Spot.Name,
		TimeFrom:  dto.TimeFrom,
		TimeUntil: dto.TimeUntil,
		Status:    dto.Status,
		Options:   dto.Options,
	}, nil
}

// AllBookings returns one page of every booking, for staff.
func (s *DefaultBookingService) AllBookings(ctx context.Context, page, count int) ([]models.FullBookingInfo, error) {
	if count <= 0 {
		count = s.StaffPageSize
	}
	if page < 0 {
		page = 0
	}
	dtos, err := s.API.Bookings(ctx, page, count)
	if err != nil {
		return []models.FullBookingInfo{}, fmt.Errorf("list bookings: %w", err)
	}
	out := make([]models.FullBookingInfo, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, fullBookingInfo(d))
	}
	return out, nil
}
