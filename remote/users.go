package remote

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Me(ctx context.Context) (UserDTO, error) {
	var out UserDTO
	err := c.Do(ctx, http.MethodGet, "/users/me", nil, &out)
	return out, err
}

func (c *Client) MyBookings(ctx context.Context, page, count int) ([]ProfileBookingDTO, error) {
	var out []ProfileBookingDTO
	err := c.Do(ctx, http.MethodGet, pagePath("/users/me/bookings", page, count), nil, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, userID string, req ChangeUserInfoRequest) error {
	return c.Do(ctx, http.MethodPatch, "/users/"+url.PathEscape(userID), req, nil)
}
