// Package services holds the pieces controllers share: token issuing, the
// social-login exchange, rating recomputation, and image storage.
package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gtwndtl/travelbook-backend/entity"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, or expiry.
var ErrInvalidToken = errors.New("invalid token")

// AuthClaims is what a signed token carries. Role freshness is not re-checked
// against the database on each request; a stale token keeps its role until
// re-issued.
type AuthClaims struct {
	UserID uint        `json:"user_id"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// JwtWrapper signs and verifies HS256 tokens.
type JwtWrapper struct {
	SecretKey string
	Issuer    string
	TTL       time.Duration
}

// GenerateToken issues a signed token embedding the user's id and role.
func (j *JwtWrapper) GenerateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// ValidateToken parses and verifies a token, returning its claims.
func (j *JwtWrapper) ValidateToken(signed string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
