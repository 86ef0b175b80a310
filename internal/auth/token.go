package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec failure kinds. Each cause is distinct so the caller can report a
// precise reason without exposing cryptographic detail to clients.
var (
	ErrTokenExpired   = errors.New("access token expired")
	ErrTokenMalformed = errors.New("access token malformed")
	ErrBadSignature   = errors.New("access token signature invalid")
)

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssuedAt returns the token's issuance instant.
func (c *AccessClaims) Issued() time.Time {
	if c.RegisteredClaims.IssuedAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.IssuedAt.Time
}

// TokenCodec issues and verifies signed access tokens. It is pure: the only
// state is the symmetric signing key and the configured TTL.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed token for the given user. Subject is the user's
// email; the uid claim carries the DB identifier so request handling does
// not need an extra lookup.
func (c *TokenCodec) Issue(userID, email, role string) (string, error) {
	now := time.Now().UTC()
	claims := &AccessClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token, returning its claims or one of
// ErrTokenExpired, ErrBadSignature, ErrTokenMalformed.
func (c *TokenCodec) Verify(raw string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &AccessClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// TTL reports the configured access token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}
