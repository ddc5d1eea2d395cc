package remote

import (
	"context"
	"net/http"
)

func (c *Client) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	var out TokenResponse
	err := c.Do(ctx, http.MethodPost, "/auth/login", req, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.Do(ctx, http.MethodPost, "/auth/register", req, nil)
}

func (c *Client) SignInWithYandex(ctx context.Context, req YandexRequest) (TokenResponse, error) {
	var out TokenResponse
	err := c.Do(ctx, http.MethodPost, "/auth/yandex", req, &out)
	return out, err
}
