package remote

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Coworkings(ctx context.Context) ([]CoworkingSummaryDTO, error) {
	var out []CoworkingSummaryDTO
	err := c.Do(ctx, http.MethodGet, "/coworkings", nil, &out)
	return out, err
}

func (c *Client) Coworking(ctx context.Context, id string) (CoworkingDetailDTO, error) {
	var out CoworkingDetailDTO
	err := c.Do(ctx, http.MethodGet, "/coworkings/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CoworkingSpots lists the spots of a coworking with their availability for the window.
func (c *Client) CoworkingSpots(ctx context.Context, id, timeFrom, timeUntil string) ([]SpotDTO, error) {
	q := url.Values{}
	q.Set("time_from", timeFrom)
	q.Set("time_until", timeUntil)

	var out []SpotDTO
	err := c.Do(ctx, http.MethodGet, "/coworkings/"+url.PathEscape(id)+"/spots?"+q.Encode(), nil, &out)
	return out, err
}
