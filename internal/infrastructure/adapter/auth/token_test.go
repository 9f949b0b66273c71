package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time                  { return c.now }
func (c *fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c *fixedClock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func TestTokenRoundTrip(t *testing.T) {
	clock := &fixedClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	manager := NewTokenManager("test-secret", time.Hour, clock)

	token, err := manager.Issue("acc-1", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestTokenExpiry(t *testing.T) {
	clock := &fixedClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	manager := NewTokenManager("test-secret", time.Hour, clock)

	token, err := manager.Issue("acc-1", "user")
	require.NoError(t, err)

	// Still valid just before the deadline.
	clock.now = clock.now.Add(59 * time.Minute)
	_, err = manager.Verify(token)
	assert.NoError(t, err)

	// Rejected after it.
	clock.now = clock.now.Add(2 * time.Minute)
	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	clock := &fixedClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	issuer := NewTokenManager("secret-one", time.Hour, clock)
	verifier := NewTokenManager("secret-two", time.Hour, clock)

	token, err := issuer.Issue("acc-1", "admin")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	clock := &fixedClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	manager := NewTokenManager("test-secret", time.Hour, clock)

	for _, input := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := manager.Verify(input)
		assert.ErrorIs(t, err, ErrInvalidToken, input)
	}
}
