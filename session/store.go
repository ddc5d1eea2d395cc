package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Store when a key has no value.
var ErrNotFound = errors.New("session: key not found")

// Store is the key-value backend holding session tokens.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
