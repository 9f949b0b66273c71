package auth

import (
	"errors"
	"fmt"
	"time"

	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails verification
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the authenticated account identity inside a token
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenManager issues and verifies signed session tokens
type TokenManager struct {
	secret       []byte
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewTokenManager creates a new token manager
func NewTokenManager(secret string, ttl time.Duration, timeProvider coreport.TimeProvider) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Issue creates a signed token for the given account
func (t *TokenManager) Issue(accountID string, role string) (string, error) {
	now := t.timeProvider.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims
func (t *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.timeProvider.Now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
