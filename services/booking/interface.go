package booking

import (
	"context"

	"go.uber.org/zap"

	"bookit/models"
	"bookit/remote"
)

// BookingService is the booking workflow used by the HTTP layer.
type BookingService interface {
	Book(ctx context.Context, spotID string, window models.TimeWindow) models.BookingStatus
	Cancel(ctx context.Context, bookingID string) error
	Reschedule(ctx context.Context, bookingID string, window models.TimeWindow) (models.RescheduledBooking, error)
	FetchSpots(ctx context.Context, coworkingID string, window models.TimeWindow) ([]models.Spot, error)
	CurrentBookingForSpot(ctx context.Context, spotID string) (models.FullBookingInfo, error)
	AllBookings(ctx context.Context, page, count int) ([]models.FullBookingInfo, error)
}

// API is the part of the booking service client the workflow calls.
type API interface {
	Book(ctx context.Context, req remote.BookRequest) error
	Booking(ctx context.Context, bookingID string) (remote.BookingCheckDTO, error)
	CancelBooking(ctx context.Context, bookingID string) error
	RescheduleBooking(ctx context.Context, bookingID string, req remote.RescheduleRequest) (remote.BookingWithOptionsDTO, error)
	Bookings(ctx context.Context, page, count int) ([]remote.FullBookingDTO, error)
	CoworkingSpots(ctx context.Context, id, timeFrom, timeUntil string) ([]remote.SpotDTO, error)
	SpotBooking(ctx context.Context, spotID string) (remote.FullBookingDTO, error)
}

// ReminderScheduler queues a push shortly before a booked window starts and
// takes it back when the window is given up.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, deviceID, spotID string, window models.TimeWindow) error
	CancelReminder(ctx context.Context, deviceID, spotID string, window models.TimeWindow) error
}

// DefaultStaffPageSize is the page size of the staff booking list.
const DefaultStaffPageSize = 500

// DefaultBookingService implements BookingService against the remote booking service.
type DefaultBookingService struct {
	API           API
	Reminders     ReminderScheduler
	Logger        *zap.Logger
	StaffPageSize int
}

func NewBookingService(api API, reminders ReminderScheduler, logger *zap.Logger, staffPageSize int) *DefaultBookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if staffPageSize <= 0 {
		staffPageSize = DefaultStaffPageSize
	}
	return &DefaultBookingService{
		API:           api,
		Reminders:     reminders,
		Logger:        logger,
		StaffPageSize: staffPageSize,
	}
}
