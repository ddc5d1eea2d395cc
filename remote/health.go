package remote

import (
	"context"
	"errors"
	"net/http"
)

// Ping reports whether the booking service answers at all. Any HTTP status,
// including 401 for an unsigned call, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	err := c.Do(ctx, http.MethodGet, "/coworkings", nil, nil)
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return err
	}
	return nil
}
