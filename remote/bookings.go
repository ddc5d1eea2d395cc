package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Book creates a booking. A rejected booking surfaces as *StatusError with the conflict body.
func (c *Client) Book(ctx context.Context, req BookRequest) error {
	return c.Do(ctx, http.MethodPost, "/bookings", req, nil)
}

func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	return c.Do(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(bookingID), nil, nil)
}

func (c *Client) RescheduleBooking(ctx context.Context, bookingID string, req RescheduleRequest) (BookingWithOptionsDTO, error) {
	var out BookingWithOptionsDTO
	err := c.Do(ctx, http.MethodPatch, "/bookings/"+url.PathEscape(bookingID), req, &out)
	return out, err
}

// Booking fetches a booking by id or scanned token.
func (c *Client) Booking(ctx context.Context, bookingID string) (BookingCheckDTO, error) {
	var out BookingCheckDTO
	err := c.Do(ctx, http.MethodGet, "/bookings/"+url.PathEscape(bookingID), nil, &out)
	return out, err
}

// Bookings lists every booking visible to staff.
func (c *Client) Bookings(ctx context.Context, page, count int) ([]FullBookingDTO, error) {
	var out []FullBookingDTO
	err := c.Do(ctx, http.MethodGet, pagePath("/bookings", page, count), nil, &out)
	return out, err
}

// SpotBooking returns the booking currently holding a spot.
func (c *Client) SpotBooking(ctx context.Context, spotID string) (FullBookingDTO, error) {
	var out FullBookingDTO
	err := c.Do(ctx, http.MethodGet, "/spots/"+url.PathEscape(spotID)+"/booking", nil, &out)
	return out, err
}

func pagePath(path string, page, count int) string {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("count", fmt.Sprint(count))
	return path + "?" + q.Encode()
}
