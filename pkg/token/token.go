// Package token issues the signed handle a session carries after the
// dashboard transition. The token binds a phone number to one portal
// module; it is a session handle, not an identity claim, since the OTP
// flow it sits behind performs no real verification.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the payload carried by a session token.
type Claims struct {
	Portal string `json:"portal"`
	jwt.RegisteredClaims
}

// Service signs and validates session tokens.
type Service struct {
	secret []byte
	expiry time.Duration
}

func NewService(secret string, expiry time.Duration) *Service {
	return &Service{secret: []byte(secret), expiry: expiry}
}

// Issue returns a signed token for the given phone and portal module.
func (s *Service) Issue(phone, portal string) (string, error) {
	now := time.Now()
	claims := Claims{
		Portal: portal,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   phone,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Validate parses a session token and returns its claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid session token claims")
	}
	return claims, nil
}
