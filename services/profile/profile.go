package profile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bookit/models"
	"bookit/remote"
)

// API is the part of the booking service client the ledger calls.
type API interface {
	Me(ctx context.Context) (remote.UserDTO, error)
	MyBookings(ctx context.Context, page, count int) ([]remote.ProfileBookingDTO, error)
	UpdateUser(ctx context.Context, userID string, req remote.ChangeUserInfoRequest) error
}

// Bookings changes a booking through the booking workflow, which also keeps
// its reminder in step.
type Bookings interface {
	Cancel(ctx context.Context, bookingID string) error
	Reschedule(ctx context.Context, bookingID string, window models.TimeWindow) (models.RescheduledBooking, error)
}

// DefaultPageSize is used when callers do not ask for a page size.
const DefaultPageSize = 20

// maxLedgerPages bounds ListAll when the service keeps answering full pages.
const maxLedgerPages = 50

// Service is the signed-in user's profile and booking ledger. Every mutation
// is followed by a full reload of the list.
type Service struct {
	api      API
	booking  Bookings
	logger   *zap.Logger
	pageSize int
}

func NewService(api API, booking Bookings, logger *zap.Logger, pageSize int) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{api: api, booking: booking, logger: logger, pageSize: pageSize}
}

func (s *Service) PageSize() int { return s.pageSize }

// ListBookings returns one page of the user's bookings. Pages start at 0.
func (s *Service) ListBookings(ctx context.Context, page, pageSize int) ([]models.ProfileBooking, error) {
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	if page < 0 {
		page = 0
	}
	dtos, err := s.api.MyBookings(ctx, page, pageSize)
	if err != nil {
		return []models.ProfileBooking{}, fmt.Errorf("list bookings page %d: %w", page, err)
	}
	out := make([]models.ProfileBooking, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.ProfileBooking{
			ID:        d.ID,
			Title:     d.Name,
			Address:   d.Address,
			TimeFrom:  d.TimeFrom,
			TimeUntil: d.TimeUntil,
			Status:    d.Status,
		})
	}
	return out, nil
}

// ListAll walks pages until the service returns a short one. A page that adds
// no unseen booking ends the walk too, as does maxLedgerPages.
func (s *Service) ListAll(ctx context.Context) ([]models.ProfileBooking, error) {
	all := []models.ProfileBooking{}
	seen := make(map[string]struct{})
	pager := NewPager(s.pageSize)
	for !pager.Exhausted() {
		page := pager.NextPage()
		if page >= maxLedgerPages {
			s.logger.Warn("Booking list truncated", zap.Int("pages", page), zap.Int("bookings", len(all)))
			break
		}
		items, err := s.ListBookings(ctx, page, s.pageSize)
		if err != nil {
			pager.Failed()
			return []models.ProfileBooking{}, err
		}
		pager.Loaded(len(items))

		fresh := 0
		for _, item := range items {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			all = append(all, item)
			fresh++
		}
		if fresh == 0 && len(items) > 0 {
			s.logger.Warn("Booking list repeats itself, service ignores paging", zap.Int("page", page))
			break
		}
	}
	return all, nil
}

// DeleteBooking cancels a booking and returns the reloaded list.
func (s *Service) DeleteBooking(ctx context.Context, bookingID string) ([]models.ProfileBooking, error) {
	if err := s.booking.Cancel(ctx, bookingID); err != nil {
		return nil, fmt.Errorf("delete booking: %w", err)
	}
	return s.ListAll(ctx)
}

// Reschedule moves a booking and returns it with the reloaded list.
func (s *Service) Reschedule(ctx context.Context, bookingID string, window models.TimeWindow) (models.RescheduledBooking, []models.ProfileBooking, error) {
	updated, err := s.booking.Reschedule(ctx, bookingID, window)
	if err != nil {
		return updated, nil, err
	}
	list, err := s.ListAll(ctx)
	if err != nil {
		return updated, nil, err
	}
	return updated, list, nil
}

// Profile returns the signed-in user.
func (s *Service) Profile(ctx context.Context) (models.UserProfile, error) {
	dto, err := s.api.Me(ctx)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	p := models.UserProfile{
		ID:         dto.ID,
		FullName:   dto.FullName,
		Email:      dto.Email,
		IsBusiness: dto.IsBusiness,
	}
	if dto.AvatarURL != nil {
		p.AvatarURL = *dto.AvatarURL
	}
	return p, nil
}

func (s *Service) ChangeUserInfo(ctx context.Context, userID, email, fullName string) error {
	if userID == "" {
		return fmt.Errorf("change user info: empty user id")
	}
	err := s.api.UpdateUser(ctx, userID, remote.ChangeUserInfoRequest{Email: email, FullName: fullName})
	if err != nil {
		return fmt.Errorf("change user info: %w", err)
	}
	return nil
}
