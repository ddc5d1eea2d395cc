package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims are the fields bookit reads from the booking service token.
// The signature is not checked here; the booking service verifies it on every call.
type Claims struct {
	Subject   string    `json:"sub"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token expiry has passed. Tokens without expiry never expire.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

func parseClaims(token string) (Claims, error) {
	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	var c Claims
	if sub, ok := mc["sub"].(string); ok {
		c.Subject = sub
	} else if id, ok := mc["user_id"].(string); ok {
		c.Subject = id
	}
	if exp, ok := mc["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return c, nil
}
