package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource yields the bearer token for the device bound to ctx.
// An empty token means the request goes out unsigned.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks JSON to the coworking booking service.
type Client struct {
	baseURL string
	http    Doer
	tokens  TokenSource
	logger  *zap.Logger
}

// NewHTTPClient returns the transport used in production.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func NewClient(baseURL string, doer Doer, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		tokens:  tokens,
		logger:  logger,
	}
}

// RequiresAuth reports whether a request to path carries the bearer token.
// User and auth endpoints go out unsigned, except /auth/me.
func RequiresAuth(path string) bool {
	if strings.HasPrefix(path, "/users") {
		return false
	}
	if strings.HasPrefix(path, "/auth") && !strings.HasPrefix(path, "/auth/me") {
		return false
	}
	return true
}

// Do sends body as JSON and decodes a 2xx response into out. Either may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	return c.send(ctx, method, path, reader, "application/json", out)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	if RequiresAuth(path) && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("read session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Remote call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}

	c.logger.Debug("Remote call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: raw}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		if out != nil {
			return &DeserializationError{Path: path, Body: raw, Err: io.ErrUnexpectedEOF}
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DeserializationError{Path: path, Body: raw, Err: err}
	}
	return nil
}
