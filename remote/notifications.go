package remote

import (
	"context"
	"net/http"
)

// RegisterDevice links a push token to the signed-in user.
func (c *Client) RegisterDevice(ctx context.Context, req DeviceRequest) error {
	return c.Do(ctx, http.MethodPost, "/notifications/device", req, nil)
}
